package lamina

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ZeroTolerance is the magnitude below which rotated stiffness terms are
// snapped to exactly zero.
const ZeroTolerance = 1e-5

// ErrDegenerateStiffness is returned when a stiffness matrix cannot be
// converted back into engineering constants.
var ErrDegenerateStiffness = errors.New("degenerate stiffness matrix")

// Q is a lamina's reduced in-plane stiffness matrix relating
// [σ1 σ2 τ12] to [ε1 ε2 γ12]. It is immutable once built.
type Q struct {
	sym *mat.SymDense
}

// NewQ builds a Q matrix from its six independent terms
func NewQ(q11, q12, q16, q22, q26, q66 float64) Q {
	return Q{sym: mat.NewSymDense(3, []float64{
		q11, q12, q16,
		q12, q22, q26,
		q16, q26, q66,
	})}
}

// QFromRows builds a Q matrix from a 3×3 row-major literal. The literal must
// be symmetric.
func QFromRows(rows [][]float64) (Q, error) {
	if len(rows) != 3 {
		return Q{}, fmt.Errorf("stiffness matrix must have 3 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if len(r) != 3 {
			return Q{}, fmt.Errorf("stiffness matrix row %d must have 3 columns, got %d", i+1, len(r))
		}
		for j, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Q{}, fmt.Errorf("stiffness matrix term (%d,%d) is not finite", i+1, j+1)
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if rows[i][j] != rows[j][i] {
				return Q{}, fmt.Errorf("stiffness matrix is not symmetric at (%d,%d)", i+1, j+1)
			}
		}
	}
	return NewQ(rows[0][0], rows[0][1], rows[0][2], rows[1][1], rows[1][2], rows[2][2]), nil
}

// At returns the (i, j) term, zero-based
func (q Q) At(i, j int) float64 {
	if q.sym == nil {
		return 0
	}
	return q.sym.At(i, j)
}

// Matrix returns a copy of the underlying symmetric matrix
func (q Q) Matrix() *mat.SymDense {
	out := mat.NewSymDense(3, nil)
	if q.sym != nil {
		out.CopySym(q.sym)
	}
	return out
}

// Rows returns the matrix as a row-major literal
func (q Q) Rows() [][]float64 {
	rows := make([][]float64, 3)
	for i := range rows {
		rows[i] = []float64{q.At(i, 0), q.At(i, 1), q.At(i, 2)}
	}
	return rows
}

// MulVec returns Q·v
func (q Q) MulVec(v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i] += q.At(i, j) * v[j]
		}
	}
	return out
}

// MakeQ builds the material-axes reduced stiffness of an orthotropic lamina
func MakeQ(e1, e2, g12, v12 float64) Q {
	v21 := e2 / e1 * v12
	den := 1 - v12*v21
	q11 := e1 / den
	q22 := e2 / den
	q12 := v12 * q22
	return NewQ(q11, q12, 0, q22, 0, g12)
}

// Props holds the engineering constants recovered from a stiffness matrix
type Props struct {
	E1  float64
	E2  float64
	V12 float64
	V21 float64
	G12 float64
}

// QToProps is the algebraic inverse of MakeQ. Off-axis coupling terms are
// ignored, so for a rotated matrix it gives the apparent constants.
func QToProps(q Q) (Props, error) {
	q11, q12, q22, q66 := q.At(0, 0), q.At(0, 1), q.At(1, 1), q.At(2, 2)
	if q11 == 0 || q22 == 0 {
		return Props{}, fmt.Errorf("%w: Q11 and Q22 must be non-zero", ErrDegenerateStiffness)
	}

	// 1 - ν12·ν21
	den := 1 - q12*q12/(q11*q22)

	var p Props
	p.E1 = q11 * den
	p.E2 = q22 * den
	if p.E2 == 0 {
		return Props{}, fmt.Errorf("%w: E2 evaluates to zero", ErrDegenerateStiffness)
	}
	p.V21 = q12 / q11
	p.V12 = p.E1 / p.E2 * p.V21
	p.G12 = q66
	return p, nil
}

// Apparent returns the engineering constants seen along the x/y axes of a
// possibly rotated stiffness, from the full compliance S = Q⁻¹. Unlike
// QToProps the shear coupling terms are taken into account.
func Apparent(q Q) (Props, error) {
	var s mat.Dense
	if err := s.Inverse(q.Matrix()); err != nil {
		return Props{}, fmt.Errorf("%w: %v", ErrDegenerateStiffness, err)
	}
	s11, s12, s22, s66 := s.At(0, 0), s.At(0, 1), s.At(1, 1), s.At(2, 2)
	if s11 == 0 || s22 == 0 || s66 == 0 {
		return Props{}, fmt.Errorf("%w: compliance has a zero diagonal term", ErrDegenerateStiffness)
	}
	return Props{
		E1:  1 / s11,
		E2:  1 / s22,
		V12: -s12 / s11,
		V21: -s12 / s22,
		G12: 1 / s66,
	}, nil
}
