package laminate

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidLaminate is the kind for unparsable or inconsistent ply data
var ErrInvalidLaminate = errors.New("invalid laminate definition")

// PlyError identifies the offending ply and field of an invalid laminate
type PlyError struct {
	Index int    // 1-based ply (or data row) number
	Field string // orientation, thickness, material, ...
	Err   error
}

func (e *PlyError) Error() string {
	return fmt.Sprintf("%v: ply %d, field %q: %v", ErrInvalidLaminate, e.Index, e.Field, e.Err)
}

func (e *PlyError) Unwrap() []error {
	return []error{ErrInvalidLaminate, e.Err}
}

// RawPly is a ply as supplied by a stack descriptor
type RawPly struct {
	Orientation float64 // degrees, counter-clockwise from the laminate x axis
	Thickness   float64
	Material    string // material reference by name
}

// Bounds is a ply's through-thickness interval measured from the mid-plane
type Bounds struct {
	ZLower float64
	ZUpper float64
}

// Mid returns the mid-thickness coordinate
func (b Bounds) Mid() float64 {
	return (b.ZLower + b.ZUpper) / 2
}

// Validate checks every ply of a bottom-first stack
func Validate(raw []RawPly) error {
	for i, p := range raw {
		if math.IsNaN(p.Orientation) || math.IsInf(p.Orientation, 0) {
			return &PlyError{Index: i + 1, Field: "orientation", Err: errors.New("must be finite")}
		}
		if math.IsNaN(p.Thickness) || math.IsInf(p.Thickness, 0) || p.Thickness <= 0 {
			return &PlyError{Index: i + 1, Field: "thickness", Err: fmt.Errorf("must be positive, got %g", p.Thickness)}
		}
		if strings.TrimSpace(p.Material) == "" {
			return &PlyError{Index: i + 1, Field: "material", Err: errors.New("missing material reference")}
		}
	}
	return nil
}

// Layout assigns z bounds to a bottom-first stack so that it is centered on
// its own mid-plane: the bottom face is at -h/2 and the top face at +h/2.
// An empty stack yields no bounds and zero thickness.
func Layout(raw []RawPly) ([]Bounds, float64, error) {
	if err := Validate(raw); err != nil {
		return nil, 0, err
	}

	var total float64
	for _, p := range raw {
		total += p.Thickness
	}

	bounds := make([]Bounds, len(raw))
	z := -total / 2
	for i, p := range raw {
		bounds[i].ZLower = z
		z += p.Thickness
		bounds[i].ZUpper = z
	}
	if n := len(bounds); n > 0 {
		bounds[n-1].ZUpper = total / 2
	}
	return bounds, total, nil
}

// Mirror returns the stack followed by its reverse, producing a laminate
// that is symmetric about the original top face.
func Mirror(raw []RawPly) []RawPly {
	out := make([]RawPly, 0, 2*len(raw))
	out = append(out, raw...)
	for i := len(raw) - 1; i >= 0; i-- {
		out = append(out, raw[i])
	}
	return out
}

// MaterialNames returns the distinct material references in stack order
func MaterialNames(raw []RawPly) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range raw {
		if !seen[p.Material] {
			seen[p.Material] = true
			names = append(names, p.Material)
		}
	}
	return names
}

// Thickness returns the total thickness of the stack
func Thickness(raw []RawPly) float64 {
	var h float64
	for _, p := range raw {
		h += p.Thickness
	}
	return h
}
