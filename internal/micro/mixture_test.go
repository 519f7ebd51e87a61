package micro

import (
	"testing"

	"github.com/alexiusacademia/golam/internal/lamina"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixCarbonEpoxy(t *testing.T) {
	l, err := Mix(Constituents{Ef: 160, Em: 4.5, Vf: 0.62, Vm: 0.38, NuF: 0.2, NuM: 0.33})
	require.NoError(t, err)

	assert.InDelta(t, 100.91, l.E1, 1e-9)
	assert.InDelta(t, 720/63.59, l.E2, 1e-9)
	assert.InDelta(t, 0.2494, l.V12, 1e-12)
	assert.InDelta(t, 160/2.4, l.Gf, 1e-9)
	assert.InDelta(t, 4.5/2.66, l.Gm, 1e-9)

	gf, gm := 160/2.4, 4.5/2.66
	assert.InDelta(t, gf*gm/(0.62*gm+0.38*gf), l.G12, 1e-9)
}

func TestMixGlassEpoxy(t *testing.T) {
	l, err := Mix(Constituents{Ef: 37, Em: 1.1, Vf: 0.605, Vm: 0.395, NuF: 0.25, NuM: 0.25})
	require.NoError(t, err)
	assert.InDelta(t, 22.82, l.E1, 0.01)
	assert.InDelta(t, 2.66, l.E2, 0.01)
	assert.InDelta(t, 0.25, l.V12, 1e-12)
}

func TestMixDegenerateFractions(t *testing.T) {
	// all-fiber with a zero-modulus matrix
	_, err := Mix(Constituents{Ef: 100, Em: 0, Vf: 1, Vm: 0, NuF: 0.2, NuM: 0.3})
	assert.ErrorIs(t, err, ErrInvalidMixture)

	// no constituents at all
	_, err = Mix(Constituents{Ef: 100, Em: 3, Vf: 0, Vm: 0, NuF: 0.2, NuM: 0.3})
	assert.ErrorIs(t, err, ErrInvalidMixture)

	// ν = -1 makes 2(1+ν) vanish
	_, err = Mix(Constituents{Ef: 100, Em: 3, Vf: 0.6, Vm: 0.4, NuF: -1, NuM: 0.3})
	assert.ErrorIs(t, err, ErrInvalidMixture)
}

func TestLaminaMaterial(t *testing.T) {
	l, err := Mix(Constituents{Ef: 160, Em: 4.5, Vf: 0.62, Vm: 0.38, NuF: 0.2, NuM: 0.33})
	require.NoError(t, err)

	m, err := l.Material("mixed")
	require.NoError(t, err)
	assert.Equal(t, lamina.FromConstants, m.Source)
	assert.Equal(t, "mixed", m.Name)
	assert.InDelta(t, l.E1, m.Constants.E1, 0)
}
