package loadcase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/golam/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cases = `Case,Factor,Nx,Ny,Nxy,Mx,My,Mxy
dead,1.2,100,0,0,0,0,0

live,,0,50,0,2,,0
`

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader(cases))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "dead", got[0].Name)
	assert.Equal(t, solver.Vector{120, 0, 0, 0, 0, 0}, got[0].Factored())

	assert.Equal(t, 1.0, got[1].Factor)
	assert.Equal(t, solver.Vector{0, 50, 0, 2, 0, 0}, got[1].Loads)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(cases), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "Case,Factor,Nx,Ny,Nxy,Mx,My,Mxy\n", "no load cases"},
		{"short row", "h\nA,1,0\n", "expected 8 columns"},
		{"no name", "h\n,1,0,0,0,0,0,0\n", "missing case name"},
		{"bad factor", "h\nA,x,0,0,0,0,0,0\n", "factor"},
		{"bad load", "h\nA,1,0,0,0,y,0,0\n", "Mx"},
		{"duplicate", "h\nA,1,0,0,0,0,0,0\nA,2,0,0,0,0,0,0\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.body))
			require.ErrorIs(t, err, ErrInvalidCase)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGoverning(t *testing.T) {
	outcomes := []Outcome{
		{Case: Case{Name: "a"}, Margin: 2, Loaded: true},
		{Case: Case{Name: "b"}, Margin: 0, Loaded: false},
		{Case: Case{Name: "c"}, Margin: 0.5, Loaded: true},
	}
	gov, ok := Governing(outcomes)
	require.True(t, ok)
	assert.Equal(t, "c", gov.Case.Name)

	_, ok = Governing(outcomes[1:2])
	assert.False(t, ok)
}
