package micro

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/golam/internal/lamina"
)

// ErrInvalidMixture is returned when a rule-of-mixtures denominator vanishes,
// typically from a degenerate 0% or 100% volume fraction.
var ErrInvalidMixture = errors.New("invalid mixture")

// Constituents holds fiber and matrix properties for a unidirectional lamina
type Constituents struct {
	Ef  float64 // Fiber modulus
	Em  float64 // Matrix modulus
	Vf  float64 // Fiber volume fraction
	Vm  float64 // Matrix volume fraction
	NuF float64 // Fiber Poisson's ratio
	NuM float64 // Matrix Poisson's ratio
}

// Lamina holds the effective elastic constants of the mixed lamina
type Lamina struct {
	E1  float64
	E2  float64
	V12 float64
	Gf  float64 // Fiber shear modulus
	Gm  float64 // Matrix shear modulus
	G12 float64
}

// Mix computes effective lamina constants with the rule of mixtures (E1, v12)
// and the inverse rule of mixtures (E2, G12).
func Mix(c Constituents) (Lamina, error) {
	var l Lamina

	l.E1 = c.Ef*c.Vf + c.Em*c.Vm

	den := c.Vf*c.Em + c.Vm*c.Ef
	if den == 0 {
		return Lamina{}, fmt.Errorf("%w: E2 denominator Vf·Em + Vm·Ef is zero", ErrInvalidMixture)
	}
	l.E2 = (c.Ef * c.Em) / den

	l.V12 = c.Vf*c.NuF + c.Vm*c.NuM

	var err error
	if l.Gf, err = shearModulus("Gf", c.Ef, c.NuF); err != nil {
		return Lamina{}, err
	}
	if l.Gm, err = shearModulus("Gm", c.Em, c.NuM); err != nil {
		return Lamina{}, err
	}

	den = c.Vf*l.Gm + c.Vm*l.Gf
	if den == 0 {
		return Lamina{}, fmt.Errorf("%w: G12 denominator Vf·Gm + Vm·Gf is zero", ErrInvalidMixture)
	}
	l.G12 = (l.Gf * l.Gm) / den

	return l, nil
}

// shearModulus returns E / 2(1+ν) for an isotropic constituent
func shearModulus(name string, e, nu float64) (float64, error) {
	if 1+nu == 0 {
		return 0, fmt.Errorf("%w: %s denominator 2(1+ν) is zero", ErrInvalidMixture, name)
	}
	return e / (2 * (1 + nu)), nil
}

// Material converts the mixed lamina into a constants-sourced material record
func (l Lamina) Material(name string) (lamina.Material, error) {
	return lamina.NewMaterial(name, lamina.Constants{
		E1:  l.E1,
		E2:  l.E2,
		G12: l.G12,
		V12: l.V12,
	})
}
