package stress

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/alexiusacademia/golam/internal/lamina"
	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/solver"
)

// ErrInvalidAllowable is returned for allowables with the wrong sign
var ErrInvalidAllowable = errors.New("invalid allowable")

// Surface selects the through-thickness coordinate a ply is evaluated at
type Surface int

const (
	Mid Surface = iota
	Bottom
	Top
)

func (s Surface) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	default:
		return "mid"
	}
}

// ParseSurface converts "mid", "bottom" or "top" into a Surface
func ParseSurface(s string) (Surface, error) {
	switch s {
	case "", "mid":
		return Mid, nil
	case "bottom":
		return Bottom, nil
	case "top":
		return Top, nil
	}
	return Mid, fmt.Errorf("unknown ply surface %q (want mid, bottom or top)", s)
}

// Z returns the coordinate of the surface within the ply bounds
func (s Surface) Z(b laminate.Bounds) float64 {
	switch s {
	case Bottom:
		return b.ZLower
	case Top:
		return b.ZUpper
	default:
		return b.Mid()
	}
}

// Allowables are the max-stress limits along the first stress component.
// Compressive is negative.
type Allowables struct {
	Tensile     float64
	Compressive float64
}

// Validate checks the sign convention
func (a Allowables) Validate() error {
	if a.Tensile <= 0 {
		return fmt.Errorf("%w: tensile allowable must be positive, got %g", ErrInvalidAllowable, a.Tensile)
	}
	if a.Compressive >= 0 {
		return fmt.Errorf("%w: compressive allowable must be negative, got %g", ErrInvalidAllowable, a.Compressive)
	}
	return nil
}

// Margin is a margin of safety. Loaded is false when the stress is exactly
// zero, in which case Value carries no meaning.
type Margin struct {
	Value  float64
	Loaded bool
}

func (m Margin) String() string {
	if !m.Loaded {
		return "no load"
	}
	return strconv.FormatFloat(m.Value, 'f', 4, 64)
}

// Fails reports whether the margin predicts failure
func (m Margin) Fails() bool {
	return m.Loaded && m.Value < 0
}

// MarginOf returns allowable/stress - 1 using the allowable on the side of
// the stress sign.
func MarginOf(stress float64, a Allowables) Margin {
	switch {
	case stress > 0:
		return Margin{Value: a.Tensile/stress - 1, Loaded: true}
	case stress < 0:
		return Margin{Value: a.Compressive/stress - 1, Loaded: true}
	default:
		return Margin{}
	}
}

// At returns the global-axes ply stress Q·ε + Q·κ·z
func At(q lamina.Q, e, k [3]float64, z float64) [3]float64 {
	se := q.MulVec(e)
	sk := q.MulVec(k)
	var out [3]float64
	for i := range out {
		out[i] = se[i] + sk[i]*z
	}
	return out
}

// PlyResult is the recovered state of one ply
type PlyResult struct {
	Ply      laminate.Ply
	Z        float64
	Global   [3]float64 // σx σy τxy
	Material [3]float64 // σ1 σ2 τ12
	Margin   Margin     // on Global[0]
}

// Recover evaluates every ply at the chosen surface and checks the first
// stress component against the allowables.
func Recover(plies []laminate.Ply, deformation solver.Vector, a Allowables, surface Surface) ([]PlyResult, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	e, k := deformation.Midplane(), deformation.Curvature()
	for _, c := range deformation {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("deformation is not finite: %v", deformation)
		}
	}

	results := make([]PlyResult, len(plies))
	for i, p := range plies {
		z := surface.Z(p.Bounds)
		s := At(p.Rotated, e, k, z)
		results[i] = PlyResult{
			Ply:      p,
			Z:        z,
			Global:   s,
			Material: lamina.ToMaterialAxes(s, lamina.Radians(p.Orientation)),
			Margin:   MarginOf(s[0], a),
		}
	}
	return results, nil
}

// Critical returns the loaded ply with the lowest margin. ok is false when
// no ply carries load.
func Critical(results []PlyResult) (PlyResult, bool) {
	var best PlyResult
	found := false
	for _, r := range results {
		if !r.Margin.Loaded {
			continue
		}
		if !found || r.Margin.Value < best.Margin.Value {
			best = r
			found = true
		}
	}
	return best, found
}

// ProfilePoint is the global stress at one through-thickness coordinate
type ProfilePoint struct {
	Ply    int
	Z      float64
	Stress [3]float64
}

// Profile returns the stress at the bottom and top face of every ply,
// bottom-first, for through-thickness plots. Stress is discontinuous at ply
// interfaces, so each interface appears twice.
func Profile(plies []laminate.Ply, deformation solver.Vector) []ProfilePoint {
	e, k := deformation.Midplane(), deformation.Curvature()
	points := make([]ProfilePoint, 0, 2*len(plies))
	for _, p := range plies {
		for _, z := range []float64{p.ZLower, p.ZUpper} {
			points = append(points, ProfilePoint{
				Ply:    p.Index,
				Z:      z,
				Stress: At(p.Rotated, e, k, z),
			})
		}
	}
	return points
}
