package laminate

import (
	"math"
	"testing"

	"github.com/alexiusacademia/golam/internal/lamina"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testMaterials(t *testing.T) *lamina.Set {
	t.Helper()
	lit, err := lamina.NewMatrixMaterial("lit", lamina.NewQ(150, 5, 0, 20, 0, 5))
	require.NoError(t, err)
	cfrp, err := lamina.NewMaterial("cfrp", lamina.Constants{E1: 181, E2: 10.3, G12: 7.17, V12: 0.28})
	require.NoError(t, err)
	set, err := lamina.NewSet(lit, cfrp)
	require.NoError(t, err)
	return set
}

func assertSymmetric(t *testing.T, m mat.Matrix) {
	t.Helper()
	r, c := m.Dims()
	require.Equal(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i), "(%d,%d)", i, j)
		}
	}
}

func TestSingleZeroPly(t *testing.T) {
	abd, err := ComputeABD([]RawPly{{Orientation: 0, Thickness: 1, Material: "lit"}}, testMaterials(t))
	require.NoError(t, err)

	q := mat.NewDense(3, 3, []float64{150, 5, 0, 5, 20, 0, 0, 0, 5})
	assert.True(t, mat.Equal(q, abd.A))
	assert.True(t, mat.Equal(mat.NewDense(3, 3, nil), abd.B))

	var want mat.Dense
	want.Scale(0.25/3, q)
	assert.True(t, mat.EqualApprox(&want, abd.D, 1e-12))
}

func TestEmptyStack(t *testing.T) {
	a, err := Analyze(nil, testMaterials(t))
	require.NoError(t, err)
	zero := mat.NewDense(3, 3, nil)
	assert.True(t, mat.Equal(zero, a.ABD.A))
	assert.True(t, mat.Equal(zero, a.ABD.B))
	assert.True(t, mat.Equal(zero, a.ABD.D))
	assert.Empty(t, a.Plies)
	assert.Zero(t, a.Thickness)
}

func TestSymmetricCrossPlyHasNoCoupling(t *testing.T) {
	raw := []RawPly{
		{Orientation: 0, Thickness: 0.125, Material: "cfrp"},
		{Orientation: 90, Thickness: 0.125, Material: "cfrp"},
		{Orientation: 90, Thickness: 0.125, Material: "cfrp"},
		{Orientation: 0, Thickness: 0.125, Material: "cfrp"},
	}
	abd, err := ComputeABD(raw, testMaterials(t))
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(mat.NewDense(3, 3, nil), abd.B, lamina.ZeroTolerance))
	assert.True(t, abd.IsSymmetricLayup())
	// cross-ply has no shear-extension coupling
	assert.Zero(t, abd.A.At(0, 2))
	assert.Zero(t, abd.D.At(1, 2))
}

func TestUnsymmetricLayupCouples(t *testing.T) {
	raw := []RawPly{
		{Orientation: 0, Thickness: 0.125, Material: "cfrp"},
		{Orientation: 90, Thickness: 0.125, Material: "cfrp"},
	}
	abd, err := ComputeABD(raw, testMaterials(t))
	require.NoError(t, err)
	assert.False(t, abd.IsSymmetricLayup())
	assert.Less(t, abd.B.At(0, 0), 0.0)
}

func TestABDSymmetricForAngledStack(t *testing.T) {
	raw := []RawPly{
		{Orientation: 30, Thickness: 0.2, Material: "cfrp"},
		{Orientation: -60, Thickness: 0.1, Material: "lit"},
		{Orientation: 45, Thickness: 0.15, Material: "cfrp"},
		{Orientation: 10, Thickness: 0.3, Material: "lit"},
	}
	a, err := Analyze(raw, testMaterials(t))
	require.NoError(t, err)
	assertSymmetric(t, a.ABD.A)
	assertSymmetric(t, a.ABD.B)
	assertSymmetric(t, a.ABD.D)
	assertSymmetric(t, a.ABD.Operator())

	again, err := Analyze(raw, testMaterials(t))
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.ABD.Operator(), again.ABD.Operator()))
}

func TestResolveKeepsOrderAndBounds(t *testing.T) {
	raw := []RawPly{
		{Orientation: 45, Thickness: 0.2, Material: "cfrp"},
		{Orientation: 0, Thickness: 0.1, Material: "lit"},
	}
	plies, total, err := Resolve(raw, testMaterials(t))
	require.NoError(t, err)
	require.Len(t, plies, 2)
	assert.InDelta(t, 0.3, total, 1e-12)
	assert.Equal(t, 45.0, plies[0].Orientation)
	assert.Equal(t, "lit", plies[1].Material)
	assert.Equal(t, 1, plies[1].Index)
	assert.InDelta(t, -0.15, plies[0].ZLower, 1e-12)
	assert.InDelta(t, 0.05, plies[0].ZUpper, 1e-12)
	assert.InDelta(t, 0.1, plies[1].Mid(), 1e-12)
	assert.Equal(t, 150.0, plies[1].Rotated.At(0, 0))
	assert.NotEqual(t, plies[0].Nominal.At(0, 0), plies[0].Rotated.At(0, 0))
}

func TestResolveUnknownMaterial(t *testing.T) {
	raw := []RawPly{
		{Orientation: 0, Thickness: 1, Material: "cfrp"},
		{Orientation: 0, Thickness: 1, Material: "kevlar"},
	}
	_, err := ComputeABD(raw, testMaterials(t))
	assert.ErrorIs(t, err, lamina.ErrUnknownMaterial)
	assert.NotErrorIs(t, err, ErrInvalidLaminate)
	assert.Contains(t, err.Error(), "ply 2")
}

func TestResolveWithoutMaterials(t *testing.T) {
	raw := []RawPly{{Orientation: 0, Thickness: 1, Material: "cfrp"}}

	_, _, err := Resolve(raw, nil)
	assert.ErrorIs(t, err, lamina.ErrUnknownMaterial)

	var none *lamina.Set
	_, _, err = Resolve(raw, none)
	assert.ErrorIs(t, err, lamina.ErrUnknownMaterial)

	abd, err := ComputeABD(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, abd.A.At(0, 0))
}

func TestEffectiveProperties(t *testing.T) {
	raw := []RawPly{{Orientation: 0, Thickness: 0.5, Material: "cfrp"}}
	abd, err := ComputeABD(raw, testMaterials(t))
	require.NoError(t, err)

	p, err := EffectiveProperties(abd, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 181, p.E1, 1e-9)
	assert.InDelta(t, 10.3, p.E2, 1e-9)
	assert.InDelta(t, 0.28, p.V12, 1e-12)
	assert.InDelta(t, 7.17, p.G12, 1e-9)

	_, err = EffectiveProperties(abd, 0)
	assert.ErrorIs(t, err, ErrInvalidLaminate)
}

func TestEffectivePropertiesUnbalanced(t *testing.T) {
	raw := []RawPly{{Orientation: 30, Thickness: 1, Material: "cfrp"}}
	abd, err := ComputeABD(raw, testMaterials(t))
	require.NoError(t, err)

	p, err := EffectiveProperties(abd, 1)
	require.NoError(t, err)

	// off-axis lamina compliance: 1/Ex = m⁴/E1 + (1/G12 - 2ν12/E1)m²n² + n⁴/E2
	m, n := math.Cos(math.Pi/6), math.Sin(math.Pi/6)
	m2, n2 := m*m, n*n
	ex := 1 / (m2*m2/181 + (1/7.17-2*0.28/181)*m2*n2 + n2*n2/10.3)
	// 1/Gxy = 4m²n²(1/E1 + 1/E2 + 2ν12/E1) + (m²-n²)²/G12
	gxy := 1 / (4*m2*n2*(1/181.0+1/10.3+2*0.28/181) + (m2-n2)*(m2-n2)/7.17)
	assert.InDelta(t, ex, p.E1, 1e-6)
	assert.InDelta(t, gxy, p.G12, 1e-6)
	assert.Less(t, p.E1, 30.0)
}
