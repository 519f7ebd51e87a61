package lamina

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sampleQ = NewQ(150, 5, 0, 20, 0, 5)

func TestRotateIdentityAtZero(t *testing.T) {
	assertQInDelta(t, sampleQ, Rotate(sampleQ, 0), 1e-12)
}

func TestRotatePeriodPi(t *testing.T) {
	for _, deg := range []float64{-75, -45, -30, 0, 15, 30, 45, 60, 90, 120, 137.5} {
		theta := Radians(deg)
		assertQInDelta(t, Rotate(sampleQ, theta), Rotate(sampleQ, theta+math.Pi), 1e-9)
	}
}

func TestRotateSymmetric(t *testing.T) {
	for _, deg := range []float64{0, 30, 45, 60, 90, -45} {
		r := RotateDeg(sampleQ, deg)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.Equal(t, r.At(i, j), r.At(j, i))
			}
		}
	}
}

func TestRotateNinetySwapsAxes(t *testing.T) {
	r := RotateDeg(sampleQ, 90)
	assert.InDelta(t, 20, r.At(0, 0), 1e-9)
	assert.InDelta(t, 150, r.At(1, 1), 1e-9)
	assert.InDelta(t, 5, r.At(0, 1), 1e-9)
	assert.InDelta(t, 5, r.At(2, 2), 1e-9)
	// cos(π/2) noise is snapped away
	assert.Equal(t, 0.0, r.At(0, 2))
	assert.Equal(t, 0.0, r.At(1, 2))
}

func TestRotateFortyFive(t *testing.T) {
	r := RotateDeg(sampleQ, 45)
	// m = n = 1/√2 so m⁴ = n⁴ = m²n² = 1/4
	assert.InDelta(t, (150+20+2*(5+10))/4.0, r.At(0, 0), 1e-9)
	assert.InDelta(t, (150+20-20)/4.0+5*0.5, r.At(0, 1), 1e-9)
	assert.InDelta(t, ((150-5-10)+(5-20+10))/4.0, r.At(0, 2), 1e-9)
	assert.InDelta(t, -r.At(0, 2), RotateDeg(sampleQ, -45).At(0, 2), 1e-9)
}

func TestTransformationRoundTrip(t *testing.T) {
	stress := [3]float64{100, -20, 15}
	assert.Equal(t, stress, ToMaterialAxes(stress, 0))

	local := ToMaterialAxes(stress, Radians(90))
	assert.InDelta(t, -20, local[0], 1e-9)
	assert.InDelta(t, 100, local[1], 1e-9)
	assert.InDelta(t, -15, local[2], 1e-9)
}

func TestMaterialAxesKeepSmallStresses(t *testing.T) {
	// GPa-scale units put real stresses well below the stiffness tolerance
	stress := [3]float64{2e-6, 0, 0}
	local := ToMaterialAxes(stress, Radians(45))
	assert.InDelta(t, 1e-6, local[0], 1e-18)
	assert.InDelta(t, 1e-6, local[1], 1e-18)
	assert.InDelta(t, -1e-6, local[2], 1e-18)
}
