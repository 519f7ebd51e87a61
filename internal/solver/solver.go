package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxCondition is the largest condition number of the diagonally scaled ABD
// operator that is still solved. Above it the laminate is reported as non-invertible.
const MaxCondition = 1e12

// ErrNonInvertible is returned when the ABD operator is singular or too
// ill-conditioned to recover strains from loads.
var ErrNonInvertible = errors.New("non-invertible laminate")

// Vector is a generalized load [Nx Ny Nxy Mx My Mxy] or deformation
// [εx εy γxy κx κy κxy].
type Vector [6]float64

// Midplane returns the first three components (forces or mid-plane strains)
func (v Vector) Midplane() [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}

// Curvature returns the last three components (moments or curvatures)
func (v Vector) Curvature() [3]float64 {
	return [3]float64{v[3], v[4], v[5]}
}

// Loads maps a deformation to the load resultants: N/M = ABD · ε/κ
func Loads(op mat.Matrix, strain Vector) (Vector, error) {
	if err := checkDims(op); err != nil {
		return Vector{}, err
	}
	var out mat.VecDense
	out.MulVec(op, mat.NewVecDense(6, strain[:]))
	return toVector(&out), nil
}

// Strains solves ABD · ε/κ = N/M for the deformation. The operator is
// scaled to a unit diagonal first, so the condition check does not depend
// on the unit system.
func Strains(op mat.Matrix, loads Vector) (Vector, error) {
	if err := checkDims(op); err != nil {
		return Vector{}, err
	}
	scaled, s, err := equilibrate(op)
	if err != nil {
		return Vector{}, err
	}

	var lu mat.LU
	lu.Factorize(scaled)
	cond := lu.Cond()
	if math.IsInf(cond, 1) || math.IsNaN(cond) || cond > MaxCondition {
		return Vector{}, fmt.Errorf("%w: condition number %.3g", ErrNonInvertible, cond)
	}

	rhs := mat.NewVecDense(6, nil)
	for i := range loads {
		rhs.SetVec(i, s[i]*loads[i])
	}
	var y mat.VecDense
	if err := lu.SolveVecTo(&y, false, rhs); err != nil {
		return Vector{}, fmt.Errorf("%w: %v", ErrNonInvertible, err)
	}

	var v Vector
	for i := range v {
		v[i] = s[i] * y.AtVec(i)
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return Vector{}, fmt.Errorf("%w: solution is not finite", ErrNonInvertible)
		}
	}
	return v, nil
}

// Condition returns the condition number of the diagonally scaled operator,
// or +Inf when it cannot be scaled.
func Condition(op mat.Matrix) float64 {
	if checkDims(op) != nil {
		return math.Inf(1)
	}
	scaled, _, err := equilibrate(op)
	if err != nil {
		return math.Inf(1)
	}
	var lu mat.LU
	lu.Factorize(scaled)
	return lu.Cond()
}

// equilibrate returns D^-½ · op · D^-½ with D = diag(op), and the factors
// D^-½. A stiffness operator has a positive diagonal; anything else cannot
// be inverted.
func equilibrate(op mat.Matrix) (*mat.Dense, [6]float64, error) {
	var s [6]float64
	for i := range s {
		d := op.At(i, i)
		if !(d > 0) || math.IsInf(d, 1) {
			return nil, s, fmt.Errorf("%w: diagonal term %d is %g", ErrNonInvertible, i+1, d)
		}
		s[i] = 1 / math.Sqrt(d)
	}
	scaled := mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			scaled.Set(i, j, s[i]*op.At(i, j)*s[j])
		}
	}
	return scaled, s, nil
}

func checkDims(op mat.Matrix) error {
	if r, c := op.Dims(); r != 6 || c != 6 {
		return fmt.Errorf("ABD operator must be 6×6, got %d×%d", r, c)
	}
	return nil
}

func toVector(v *mat.VecDense) Vector {
	var out Vector
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
