package eqlayer

import (
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-gravmag/internal/check"
)

// DefaultMaxIterations is the usual iteration cap of the solvers.
const DefaultMaxIterations = 50

var (
	// ErrInvalidArgument is wrapped by every input validation failure.
	ErrInvalidArgument = check.ErrInvalidArgument

	// ErrLayerAboveData is the advisory logged when the deepest data point is
	// not above the shallowest source. It is never returned.
	ErrLayerAboveData = check.ErrLayerAboveData
)

// Orientation is an inclination/declination pair in degrees.
type Orientation struct {
	Inc, Dec float64
}

// Config holds the settings shared by the kernel builders and the solvers.
type Config struct {
	// Validate enables input checks and the geometric advisory. Disable it
	// only for inputs already checked by the caller.
	Validate bool

	// Logger receives geometric advisories and, with Verbose, one line per
	// solver iteration.
	Logger *log.Logger

	// Verbose logs solver progress.
	Verbose bool

	// MainField is the direction onto which the "t" field is projected.
	MainField *Orientation
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a validating, quiet configuration logging to stderr.
func DefaultConfig() Config {
	return Config{
		Validate: true,
		Logger:   log.New(os.Stderr, "eqlayer: ", log.LstdFlags),
	}
}

// WithValidation toggles input validation.
func WithValidation(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Validate = enabled
	}
}

// WithLogger sets the destination of advisories and progress lines.
// A nil logger discards them.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *Config) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		cfg.Logger = logger
	}
}

// WithVerbose toggles per-iteration progress logging.
func WithVerbose(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = enabled
	}
}

// WithMainField sets the main-field direction required by the "t" field.
func WithMainField(inc, dec float64) Option {
	return func(cfg *Config) {
		cfg.MainField = &Orientation{Inc: inc, Dec: dec}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg Config) progress(solver string, iteration int, delta float64) {
	if cfg.Verbose {
		cfg.Logger.Printf("%s: iteration %d delta %.6e", solver, iteration, delta)
	}
}

func (cfg Config) warn(err error) {
	cfg.Logger.Print(err)
}
