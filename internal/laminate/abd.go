package laminate

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/golam/internal/lamina"
	"gonum.org/v1/gonum/mat"
)

// Materials resolves a material reference by name
type Materials interface {
	Lookup(name string) (lamina.Material, error)
}

// Ply is a fully resolved ply: its bounds and both stiffness variants are
// computed once and never changed.
type Ply struct {
	Index       int // 0 = bottom ply
	Orientation float64
	Thickness   float64
	Material    string
	Bounds
	Nominal lamina.Q // material axes
	Rotated lamina.Q // laminate axes
}

// ABD holds the extensional (A), coupling (B) and bending (D) stiffness
type ABD struct {
	A *mat.SymDense
	B *mat.SymDense
	D *mat.SymDense
}

// Analysis is the result of resolving and assembling a stack
type Analysis struct {
	Plies     []Ply
	ABD       ABD
	Thickness float64
}

// Resolve lays out a bottom-first stack and attaches each ply's nominal and
// rotated stiffness. The input is not modified.
func Resolve(raw []RawPly, materials Materials) ([]Ply, float64, error) {
	bounds, total, err := Layout(raw)
	if err != nil {
		return nil, 0, err
	}

	plies := make([]Ply, len(raw))
	for i, p := range raw {
		if materials == nil {
			return nil, 0, fmt.Errorf("ply %d: %w: %q (no material set)", i+1, lamina.ErrUnknownMaterial, p.Material)
		}
		m, err := materials.Lookup(p.Material)
		if err != nil {
			return nil, 0, fmt.Errorf("ply %d: %w", i+1, err)
		}
		nominal := m.Stiffness()
		plies[i] = Ply{
			Index:       i,
			Orientation: p.Orientation,
			Thickness:   p.Thickness,
			Material:    p.Material,
			Bounds:      bounds[i],
			Nominal:     nominal,
			Rotated:     lamina.RotateDeg(nominal, p.Orientation),
		}
	}
	return plies, total, nil
}

// Assemble integrates each ply's rotated stiffness through its thickness:
//
//	A = Σ Q (zu - zl)
//	B = ½ Σ Q (zu² - zl²)
//	D = ⅓ Σ Q (zu³ - zl³)
func Assemble(plies []Ply) ABD {
	abd := ABD{
		A: mat.NewSymDense(3, nil),
		B: mat.NewSymDense(3, nil),
		D: mat.NewSymDense(3, nil),
	}
	for _, p := range plies {
		zl, zu := p.ZLower, p.ZUpper
		accumulate(abd.A, p.Rotated, zu-zl)
		accumulate(abd.B, p.Rotated, (zu*zu-zl*zl)/2)
		accumulate(abd.D, p.Rotated, (zu*zu*zu-zl*zl*zl)/3)
	}
	return abd
}

func accumulate(dst *mat.SymDense, q lamina.Q, f float64) {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			dst.SetSym(i, j, dst.At(i, j)+q.At(i, j)*f)
		}
	}
}

// Analyze resolves the stack and assembles its ABD matrix
func Analyze(raw []RawPly, materials Materials) (*Analysis, error) {
	plies, total, err := Resolve(raw, materials)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Plies:     plies,
		ABD:       Assemble(plies),
		Thickness: total,
	}, nil
}

// ComputeABD returns the A, B and D matrices of a bottom-first stack
func ComputeABD(raw []RawPly, materials Materials) (ABD, error) {
	a, err := Analyze(raw, materials)
	if err != nil {
		return ABD{}, err
	}
	return a.ABD, nil
}

// Operator returns the 6×6 block matrix [[A, B], [B, D]]
func (m ABD) Operator() *mat.Dense {
	op := mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			op.Set(i, j, m.A.At(i, j))
			op.Set(i, j+3, m.B.At(i, j))
			op.Set(i+3, j, m.B.At(i, j))
			op.Set(i+3, j+3, m.D.At(i, j))
		}
	}
	return op
}

// IsSymmetricLayup reports whether the coupling matrix vanishes to within
// lamina.ZeroTolerance
func (m ABD) IsSymmetricLayup() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m.B.At(i, j)) > lamina.ZeroTolerance {
				return false
			}
		}
	}
	return true
}

// EffectiveProperties returns the in-plane engineering constants of the
// whole laminate from the compliance of A/h, so the shear coupling of
// unbalanced layups is accounted for.
func EffectiveProperties(m ABD, h float64) (lamina.Props, error) {
	if h <= 0 {
		return lamina.Props{}, fmt.Errorf("%w: effective properties need a positive thickness, got %g", ErrInvalidLaminate, h)
	}
	q := lamina.NewQ(
		m.A.At(0, 0)/h, m.A.At(0, 1)/h, m.A.At(0, 2)/h,
		m.A.At(1, 1)/h, m.A.At(1, 2)/h,
		m.A.At(2, 2)/h,
	)
	return lamina.Apparent(q)
}
