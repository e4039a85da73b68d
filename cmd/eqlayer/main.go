// Command eqlayer runs the equivalent-layer solvers on a synthetic survey
// and prints how each one converged.
//
// Usage:
//
//	eqlayer [flags] [solver ...]
//
// Without arguments it runs every solver on the same problem. The survey is
// a regular Q×P grid over a layer with one dipole under every data point;
// the data are the field of random layer parameters, optionally with noise.
//
// Examples:
//
//	eqlayer
//	eqlayer -q 40 -p 50 tob20
//	eqlayer -field t -inc 35 -dec -12 -inct 35 -dect -12 cgls tob20
//	eqlayer -trace sob17
//	eqlayer -list
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/bttb"
	"github.com/cwbudde/algo-gravmag/gravmag/convolve"
	"github.com/cwbudde/algo-gravmag/gravmag/eqlayer"
	"github.com/cwbudde/algo-gravmag/gravmag/geom"
)

type solverEntry struct {
	name        string
	description string
	run         func(pb *problem) (*eqlayer.Result, error)
}

var registry = []solverEntry{
	{"cgls", "conjugate gradient least squares on the dense kernel", runCGLS},
	{"c92", "column action (Cordell, 1992)", runC92},
	{"sob17", "iterative scaled residuals (Siqueira et al., 2017)", runSOB17},
	{"tob20", "CGLS through BCCB convolution (Takahashi et al., 2020)", runTOB20},
}

// problem is the synthetic survey shared by every solver.
type problem struct {
	grid     geom.Grid
	depth    float64
	inc, dec float64
	field    eqlayer.Field
	ordering convolve.Ordering
	epsilon  float64
	maxIter  int
	opts     []eqlayer.Option

	params []float64
	data   []float64
	kernel *mat.Dense
}

func main() {
	q := flag.Int("q", 20, "grid lines along x (north)")
	p := flag.Int("p", 20, "grid lines along y (east)")
	spacing := flag.Float64("spacing", 100, "grid spacing in meters")
	height := flag.Float64("height", -100, "z of the data surface (z points down)")
	depth := flag.Float64("depth", 150, "z of the equivalent layer")
	inc := flag.Float64("inc", 90, "magnetization inclination in degrees")
	dec := flag.Float64("dec", 0, "magnetization declination in degrees")
	fieldName := flag.String("field", "z", "field component: potential, x, y, z or t")
	inct := flag.Float64("inct", 90, "main-field inclination in degrees, for -field t")
	dect := flag.Float64("dect", 0, "main-field declination in degrees, for -field t")
	orderingName := flag.String("ordering", "row", "BCCB grid ordering for tob20: row or column")
	epsilon := flag.Float64("eps", 1e-6, "convergence tolerance")
	maxIter := flag.Int("itmax", eqlayer.DefaultMaxIterations, "maximum number of iterations")
	noise := flag.Float64("noise", 0, "standard deviation of the noise added to the data")
	seed := flag.Int64("seed", 1, "random seed for the parameters and the noise")
	trace := flag.Bool("trace", false, "print the convergence trace of every solver")
	verbose := flag.Bool("verbose", false, "log every iteration to stderr")
	list := flag.Bool("list", false, "list available solvers")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqlayer [flags] [solver ...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs equivalent-layer solvers on a synthetic gridded survey.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, runs every solver.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqlayer -q 40 -p 50 tob20\n")
		fmt.Fprintf(os.Stderr, "  eqlayer -trace sob17\n")
		fmt.Fprintf(os.Stderr, "  eqlayer -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	field, err := eqlayer.ParseField(strings.ToLower(*fieldName))
	if err != nil {
		fatalf("%v", err)
	}
	ordering, err := convolve.ParseOrdering(strings.ToLower(*orderingName))
	if err != nil {
		fatalf("%v", err)
	}
	area := [4]float64{0, float64(*q-1) * *spacing, 0, float64(*p-1) * *spacing}
	grid, err := geom.NewGrid(area, [2]int{*q, *p}, *height)
	if err != nil {
		fatalf("%v", err)
	}

	pb := &problem{
		grid:     grid,
		depth:    *depth,
		inc:      *inc,
		dec:      *dec,
		field:    field,
		ordering: ordering,
		epsilon:  *epsilon,
		maxIter:  *maxIter,
		opts: []eqlayer.Option{
			eqlayer.WithMainField(*inct, *dect),
			eqlayer.WithVerbose(*verbose),
			eqlayer.WithLogger(log.New(os.Stderr, "eqlayer: ", 0)),
		},
	}
	if err := pb.synthesize(*seed, *noise); err != nil {
		fatalf("%v", err)
	}

	entries := resolveEntries(flag.Args())
	if len(entries) == 0 {
		fatalf("no matching solvers")
	}
	runAll(pb, entries, *trace)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func printList() {
	sorted := append([]solverEntry(nil), registry...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range sorted {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.name, e.description)
	}
	_ = tw.Flush()
}

func resolveEntries(names []string) []solverEntry {
	if len(names) == 0 {
		return registry
	}

	byName := make(map[string]solverEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []solverEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown solver %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

// synthesize draws the true parameters and computes the data through the
// dense kernel, which the dense solvers reuse.
func (pb *problem) synthesize(seed int64, noise float64) error {
	rng := rand.New(rand.NewSource(seed))
	n := pb.grid.Len()

	pb.params = make([]float64, n)
	for i := range pb.params {
		pb.params[i] = 1 + rng.NormFloat64()
	}

	kernel, err := eqlayer.KernelDipoles(pb.grid.Points(), pb.grid.AtDepth(pb.depth).Points(),
		pb.inc, pb.dec, pb.field, pb.opts...)
	if err != nil {
		return err
	}
	pb.kernel = kernel

	pb.data = make([]float64, n)
	eqlayer.NewDenseOperator(kernel).MulVecTo(pb.data, pb.params)
	for i := range pb.data {
		pb.data[i] += noise * rng.NormFloat64()
	}
	return nil
}

func runCGLS(pb *problem) (*eqlayer.Result, error) {
	return eqlayer.CGLS([]eqlayer.Dataset{{Kernel: pb.kernel, Data: pb.data}}, pb.epsilon, pb.maxIter, pb.opts...)
}

func runC92(pb *problem) (*eqlayer.Result, error) {
	return eqlayer.ColumnActionC92(pb.kernel, pb.data, pb.grid.Points(), pb.depth, pb.epsilon, pb.maxIter, pb.opts...)
}

func runSOB17(pb *problem) (*eqlayer.Result, error) {
	return eqlayer.IterativeSOB17(pb.kernel, pb.data, pb.epsilon, pb.maxIter, pb.opts...)
}

func runTOB20(pb *problem) (*eqlayer.Result, error) {
	meta, err := eqlayer.KernelDipolesBTTB(pb.grid, pb.depth, pb.inc, pb.dec, pb.field, pb.opts...)
	if err != nil {
		return nil, err
	}
	factor, err := meta.TranspositionFactor(1e-9 * maxAbs(meta))
	if err != nil {
		return nil, fmt.Errorf("tob20 needs a symmetric or skew-symmetric kernel: %w", err)
	}
	L, err := convolve.EigenvaluesBCCB(meta, pb.ordering)
	if err != nil {
		return nil, err
	}

	ds := eqlayer.SpectralDataset{Eigenvalues: L, Factor: factor, Data: pb.data}
	return eqlayer.DeconvolutionTOB20([]eqlayer.SpectralDataset{ds}, pb.grid.Q, pb.grid.P, pb.ordering,
		pb.epsilon, pb.maxIter, pb.opts...)
}

// maxAbs returns the largest generating entry of meta.
func maxAbs(meta bttb.Metadata) float64 {
	var m float64
	for _, set := range [][][]float64{meta.Columns, meta.Rows} {
		for _, v := range set {
			if len(v) > 0 {
				m = math.Max(m, math.Max(floats.Max(v), -floats.Min(v)))
			}
		}
	}
	return m
}

func runAll(pb *problem, entries []solverEntry, showTrace bool) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Solver\tGrid\tIterations\tStatus\tFirst\tLast\tParam. error\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "------\t----\t----------\t------\t-----\t----\t------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	traces := make(map[string][]float64, len(entries))
	for _, e := range entries {
		res, err := e.run(pb)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}
		traces[e.name] = res.Trace

		relErr := floats.Distance(res.Parameters, pb.params, 2) / floats.Norm(pb.params, 2)
		if _, err := fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%v\t%.4e\t%.4e\t%.4e\n",
			e.name,
			pb.grid.Q, pb.grid.P,
			res.Iterations(),
			res.Status,
			res.Trace[0],
			res.Final(),
			relErr,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	if showTrace {
		printTraces(entries, traces)
	}
}

func printTraces(entries []solverEntry, traces map[string][]float64) {
	for _, e := range entries {
		trace, ok := traces[e.name]
		if !ok {
			continue
		}
		fmt.Printf("\n%s\n", e.name)
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		for i, v := range trace {
			_, _ = fmt.Fprintf(tw, "%d\t%.6e\t\n", i, v)
		}
		_ = tw.Flush()
	}
}
