package eqlayer

import (
	"fmt"

	"github.com/cwbudde/algo-gravmag/internal/check"
)

// Field selects the component computed by a kernel.
type Field int

const (
	FieldPotential Field = iota
	FieldX
	FieldY
	FieldZ
	// FieldT is the total-field anomaly: the induction along the main field.
	FieldT
	FieldXX
	FieldXY
	FieldXZ
	FieldYY
	FieldYZ
	FieldZZ
)

var fieldNames = [...]string{
	FieldPotential: "potential",
	FieldX:         "x",
	FieldY:         "y",
	FieldZ:         "z",
	FieldT:         "t",
	FieldXX:        "xx",
	FieldXY:        "xy",
	FieldXZ:        "xz",
	FieldYY:        "yy",
	FieldYZ:        "yz",
	FieldZZ:        "zz",
}

// String implements fmt.Stringer.
func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField converts a field name such as "potential", "z" or "xy".
func ParseField(s string) (Field, error) {
	for f, name := range fieldNames {
		if name == s {
			return Field(f), nil
		}
	}
	return 0, check.Invalidf("invalid field %q", s)
}
