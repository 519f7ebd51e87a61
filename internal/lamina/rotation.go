package lamina

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rotate transforms a material-axes Q into global axes for a ply at angle
// theta (radians, counter-clockwise from the global x axis). Terms with
// magnitude at or below ZeroTolerance are snapped to zero so that balanced
// and symmetric layups cancel exactly.
func Rotate(q Q, theta float64) Q {
	m := math.Cos(theta)
	n := math.Sin(theta)

	q11, q12, q22, q66 := q.At(0, 0), q.At(0, 1), q.At(1, 1), q.At(2, 2)

	m2, n2 := m*m, n*n
	m4, n4 := m2*m2, n2*n2
	mn2 := m2 * n2

	r11 := q11*m4 + q22*n4 + 2*(q12+2*q66)*mn2
	r12 := (q11+q22-4*q66)*mn2 + q12*(m4+n4)
	r22 := q11*n4 + q22*m4 + 2*(q12+2*q66)*mn2
	r16 := (q11-q12-2*q66)*m2*m*n + (q12-q22+2*q66)*m*n2*n
	r26 := (q11-q12-2*q66)*m*n2*n + (q12-q22+2*q66)*m2*m*n
	r66 := (q11+q22-2*q12-2*q66)*mn2 + q66*(m4+n4)

	return NewQ(snap(r11), snap(r12), snap(r16), snap(r22), snap(r26), snap(r66))
}

// RotateDeg is Rotate with the angle in degrees
func RotateDeg(q Q, deg float64) Q {
	return Rotate(q, Radians(deg))
}

// Radians converts a ply orientation in degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func snap(x float64) float64 {
	if math.Abs(x) <= ZeroTolerance {
		return 0
	}
	return x
}

// Transformation returns the stress transformation matrix T(theta) mapping
// global [σx σy τxy] into material axes [σ1 σ2 τ12].
func Transformation(theta float64) *mat.Dense {
	m := math.Cos(theta)
	n := math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		m * m, n * n, 2 * m * n,
		n * n, m * m, -2 * m * n,
		-m * n, m * n, m*m - n*n,
	})
}

// ToMaterialAxes rotates a global-axes stress into the ply's material axes
func ToMaterialAxes(stress [3]float64, theta float64) [3]float64 {
	var out mat.VecDense
	out.MulVec(Transformation(theta), mat.NewVecDense(3, stress[:]))
	return [3]float64{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}
