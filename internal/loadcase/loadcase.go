package loadcase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/golam/internal/solver"
)

// ErrInvalidCase is returned for malformed load case rows
var ErrInvalidCase = errors.New("invalid load case")

// header of a load case file
var header = []string{"Case", "Factor", "Nx", "Ny", "Nxy", "Mx", "My", "Mxy"}

// Case is a named set of unfactored resultants with its load factor
type Case struct {
	Name   string
	Factor float64
	Loads  solver.Vector // Nx Ny Nxy Mx My Mxy
}

// Factored returns the resultants scaled by the load factor
func (c Case) Factored() solver.Vector {
	var v solver.Vector
	for i, x := range c.Loads {
		v[i] = c.Factor * x
	}
	return v
}

// Load reads load cases from a comma-separated file
func Load(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a header row followed by one case per row. Empty rows are
// skipped; the factor column may be left blank for 1.0.
func Read(r io.Reader) ([]Case, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var cases []Case
	seen := make(map[string]bool)
	row := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCase, err)
		}
		row++
		if row == 1 {
			continue
		}
		if blank(rec) {
			continue
		}

		c, err := parseRow(row, rec)
		if err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: row %d: duplicate case %q", ErrInvalidCase, row, c.Name)
		}
		seen[c.Name] = true
		cases = append(cases, c)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: no load cases", ErrInvalidCase)
	}
	return cases, nil
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row int, rec []string) (Case, error) {
	if len(rec) != len(header) {
		return Case{}, fmt.Errorf("%w: row %d: expected %d columns, got %d", ErrInvalidCase, row, len(header), len(rec))
	}

	c := Case{Name: strings.TrimSpace(rec[0]), Factor: 1}
	if c.Name == "" {
		return Case{}, fmt.Errorf("%w: row %d: missing case name", ErrInvalidCase, row)
	}
	if s := strings.TrimSpace(rec[1]); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Case{}, fmt.Errorf("%w: row %d: factor %q is not a number", ErrInvalidCase, row, s)
		}
		c.Factor = f
	}
	for i := range c.Loads {
		s := strings.TrimSpace(rec[2+i])
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Case{}, fmt.Errorf("%w: row %d: %s %q is not a number", ErrInvalidCase, row, header[2+i], s)
		}
		c.Loads[i] = v
	}
	return c, nil
}

// Outcome is the lowest margin reached under one case
type Outcome struct {
	Case   Case
	Margin float64
	Loaded bool
}

// Governing returns the loaded outcome with the lowest margin. ok is false
// when no case loads any ply.
func Governing(outcomes []Outcome) (Outcome, bool) {
	var gov Outcome
	found := false
	for _, o := range outcomes {
		if !o.Loaded {
			continue
		}
		if !found || o.Margin < gov.Margin {
			gov = o
			found = true
		}
	}
	return gov, found
}
