package lamina

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidMaterial is the kind shared by every material record failure
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrMissingField is returned when a required field is absent
	ErrMissingField = fmt.Errorf("%w: missing field", ErrInvalidMaterial)

	// ErrMalformedField is returned when a field is present but unusable
	ErrMalformedField = fmt.Errorf("%w: malformed field", ErrInvalidMaterial)

	// ErrUnknownMaterial is returned when a ply references a material name
	// that is not in the material set
	ErrUnknownMaterial = errors.New("unknown material")
)

// FieldError identifies the material field that failed to load
type FieldError struct {
	Material string
	Field    string
	Kind     error // ErrMissingField or ErrMalformedField
	Detail   string
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("material %q: %v %q", e.Material, e.Kind, e.Field)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// Source tags where a material's nominal stiffness came from
type Source int

const (
	// FromConstants means Q was built from E1, E2, G12 and v12
	FromConstants Source = iota + 1
	// FromMatrix means a literal Q was supplied and constants were back-derived
	FromMatrix
)

func (s Source) String() string {
	switch s {
	case FromConstants:
		return "constants"
	case FromMatrix:
		return "stiffness matrix"
	default:
		return "unknown"
	}
}

// Constants are the four in-plane elastic constants of an orthotropic lamina
type Constants struct {
	E1  float64 `json:"E1"`
	E2  float64 `json:"E2"`
	G12 float64 `json:"G12"`
	V12 float64 `json:"v12"`
}

// Material is a canonical, read-only material record. Plies reference it by
// name only.
type Material struct {
	Name      string
	Source    Source
	Constants Constants
	nominal   Q
}

// NewMaterial validates the constants and builds the nominal stiffness
func NewMaterial(name string, c Constants) (Material, error) {
	checks := []struct {
		field string
		value float64
	}{
		{"E1", c.E1},
		{"E2", c.E2},
		{"G12", c.G12},
	}
	for _, chk := range checks {
		if math.IsNaN(chk.value) || math.IsInf(chk.value, 0) || chk.value <= 0 {
			return Material{}, &FieldError{Material: name, Field: chk.field, Kind: ErrMalformedField,
				Detail: fmt.Sprintf("must be a positive finite number, got %g", chk.value)}
		}
	}
	if math.IsNaN(c.V12) || math.Abs(c.V12) >= 1 {
		return Material{}, &FieldError{Material: name, Field: "v12", Kind: ErrMalformedField,
			Detail: fmt.Sprintf("must satisfy |v12| < 1, got %g", c.V12)}
	}
	if c.V12*c.V12*c.E2/c.E1 >= 1 {
		return Material{}, &FieldError{Material: name, Field: "v12", Kind: ErrMalformedField,
			Detail: "v12·v21 must be less than 1"}
	}

	return Material{
		Name:      name,
		Source:    FromConstants,
		Constants: c,
		nominal:   MakeQ(c.E1, c.E2, c.G12, c.V12),
	}, nil
}

// NewMatrixMaterial uses a literal material-axes stiffness. The constants
// are back-derived from it.
func NewMatrixMaterial(name string, q Q) (Material, error) {
	for _, d := range []struct {
		field string
		i     int
	}{{"Q11", 0}, {"Q22", 1}, {"Q66", 2}} {
		if q.At(d.i, d.i) <= 0 {
			return Material{}, &FieldError{Material: name, Field: "Q", Kind: ErrMalformedField,
				Detail: d.field + " must be positive"}
		}
	}
	if math.Abs(q.At(0, 2)) > ZeroTolerance || math.Abs(q.At(1, 2)) > ZeroTolerance {
		return Material{}, &FieldError{Material: name, Field: "Q", Kind: ErrMalformedField,
			Detail: "material-axes stiffness must have Q16 = Q26 = 0"}
	}
	if q12 := q.At(0, 1); q12*q12 >= q.At(0, 0)*q.At(1, 1) {
		return Material{}, &FieldError{Material: name, Field: "Q", Kind: ErrMalformedField,
			Detail: "stiffness must be positive definite (Q12² < Q11·Q22)"}
	}

	p, err := QToProps(q)
	if err != nil {
		return Material{}, &FieldError{Material: name, Field: "Q", Kind: ErrMalformedField, Detail: err.Error()}
	}

	return Material{
		Name:   name,
		Source: FromMatrix,
		Constants: Constants{
			E1:  p.E1,
			E2:  p.E2,
			G12: p.G12,
			V12: p.V12,
		},
		nominal: q,
	}, nil
}

// Stiffness returns the nominal (material axes) Q
func (m Material) Stiffness() Q {
	return m.nominal
}

// Set is a read-only collection of materials keyed by name
type Set struct {
	byName map[string]Material
}

// NewSet builds a material set. Duplicate names are rejected.
func NewSet(materials ...Material) (*Set, error) {
	s := &Set{byName: make(map[string]Material, len(materials))}
	for _, m := range materials {
		if _, ok := s.byName[m.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate material name %q", ErrInvalidMaterial, m.Name)
		}
		s.byName[m.Name] = m
	}
	return s, nil
}

// Lookup returns the material with the given name
func (s *Set) Lookup(name string) (Material, error) {
	if s != nil {
		if m, ok := s.byName[name]; ok {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}

// Names returns the material names in sorted order
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of materials in the set
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byName)
}
