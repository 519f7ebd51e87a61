package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var crossPly = []PlyRow{
	{Orientation: 0, Thickness: 0.5, Material: "cfrp", ZLower: -1, ZUpper: -0.5},
	{Orientation: 90, Thickness: 0.5, Material: "cfrp", ZLower: -0.5, ZUpper: 0},
	{Orientation: 45, Thickness: 0.5, Material: "glass", ZLower: 0, ZUpper: 0.5},
	{Orientation: -45, Thickness: 0.5, Material: "glass", ZLower: 0.5, ZUpper: 1},
}

var bending = ProfileData{
	Component: "σx",
	Segments: []Segment{
		{ZLower: -1, ZUpper: 0, StressLower: -10, StressUpper: 0},
		{ZLower: 0, ZUpper: 1, StressLower: 0, StressUpper: 2},
	},
}

func TestDrawStackTopDown(t *testing.T) {
	out := DrawStack(crossPly)
	lines := strings.Split(out, "\n")

	var plyLines []string
	for _, l := range lines {
		if strings.Contains(l, "ply ") {
			plyLines = append(plyLines, l)
		}
	}
	require.Len(t, plyLines, 4)
	assert.Contains(t, plyLines[0], "ply 4")
	assert.Contains(t, plyLines[0], "\\")
	assert.Contains(t, plyLines[3], "ply 1")
	assert.Contains(t, plyLines[3], "═")
	assert.Contains(t, out, "z = +1.0000")
	assert.Contains(t, out, "z = -1.0000")
}

func TestDrawStackEmpty(t *testing.T) {
	assert.Contains(t, DrawStack(nil), "no plies")
}

func TestFiberGlyph(t *testing.T) {
	assert.Equal(t, "═", fiberGlyph(0))
	assert.Equal(t, "═", fiberGlyph(180))
	assert.Equal(t, "║", fiberGlyph(90))
	assert.Equal(t, "║", fiberGlyph(-90))
	assert.Equal(t, "/", fiberGlyph(45))
	assert.Equal(t, "\\", fiberGlyph(-45))
	assert.Equal(t, "\\", fiberGlyph(135))
}

func TestSample(t *testing.T) {
	z, s := bending.Sample(5)
	require.Len(t, z, 5)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, z)
	assert.InDeltaSlice(t, []float64{-10, -5, 0, 1, 2}, s, 1e-12)

	z, s = ProfileData{}.Sample(5)
	assert.Nil(t, z)
	assert.Nil(t, s)
}

func TestDrawProfile(t *testing.T) {
	out := DrawProfile(bending)
	assert.Contains(t, out, "ΣX DISTRIBUTION")
	assert.Contains(t, out, "bottom → top")
	assert.Contains(t, DrawProfile(ProfileData{Component: "σx"}), "no plies")
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("CRITICAL PLY", []string{"ply 3 at 45°", "MS = 0.25"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestExportProfile(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "out", "profile.png")
	require.NoError(t, ExportProfile(bending, crossPly[:2], png))
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	svg := filepath.Join(dir, "profile.svg")
	require.NoError(t, ExportProfile(bending, nil, svg))
	_, err = os.Stat(svg)
	require.NoError(t, err)

	bare := filepath.Join(dir, "profile")
	require.NoError(t, ExportProfile(bending, nil, bare))
	_, err = os.Stat(bare + ".png")
	require.NoError(t, err)

	assert.Error(t, ExportProfile(ProfileData{}, nil, png))
}
