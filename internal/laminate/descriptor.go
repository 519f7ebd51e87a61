package laminate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadOptions controls how a stack descriptor is interpreted
type ReadOptions struct {
	// BottomUp means the first data row is the bottom ply. By default rows
	// are authored top-down and the stack is reversed once after reading.
	BottomUp bool
}

// Column order of a stack descriptor row
const (
	colIndex = iota
	colOrientation
	colThickness
	colMaterial
	numColumns
)

var header = []string{"Layer", "Orientation", "Thickness", "Material"}

// LoadStack reads a stack descriptor file
func LoadStack(path string, opts ReadOptions) ([]RawPly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadStack(f, opts)
}

// ReadStack parses comma-separated rows of (index, orientation, thickness,
// material) after one header row. The result is always bottom-first.
// Errors name the data row in file order and the failing field.
func ReadStack(r io.Reader, opts ReadOptions) ([]RawPly, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidLaminate, err)
	}

	var plies []RawPly
	row := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLaminate, err)
		}

		cells := trimCells(rec)
		if len(cells) == 0 {
			continue
		}
		row++
		p, err := parseRow(row, cells)
		if err != nil {
			return nil, err
		}
		plies = append(plies, p)
	}

	if !opts.BottomUp {
		reverse(plies)
	}
	return plies, nil
}

// trimCells strips whitespace and drops trailing empty cells
func trimCells(rec []string) []string {
	cells := make([]string, len(rec))
	for i, c := range rec {
		cells[i] = strings.TrimSpace(c)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func parseRow(row int, cells []string) (RawPly, error) {
	if len(cells) < numColumns {
		field := strings.ToLower(header[len(cells)])
		return RawPly{}, &PlyError{Index: row, Field: field, Err: errors.New("missing value")}
	}

	if _, err := strconv.Atoi(cells[colIndex]); err != nil {
		return RawPly{}, &PlyError{Index: row, Field: "index", Err: err}
	}
	orientation, err := strconv.ParseFloat(cells[colOrientation], 64)
	if err != nil {
		return RawPly{}, &PlyError{Index: row, Field: "orientation", Err: err}
	}
	thickness, err := strconv.ParseFloat(cells[colThickness], 64)
	if err != nil {
		return RawPly{}, &PlyError{Index: row, Field: "thickness", Err: err}
	}

	p := RawPly{
		Orientation: orientation,
		Thickness:   thickness,
		Material:    cells[colMaterial],
	}
	if err := Validate([]RawPly{p}); err != nil {
		var pe *PlyError
		if errors.As(err, &pe) {
			pe.Index = row
		}
		return RawPly{}, err
	}
	return p, nil
}

// WriteStack writes a bottom-first stack as a descriptor. Rows are emitted
// top-down unless opts.BottomUp is set, so ReadStack with the same options
// returns the original order.
func WriteStack(w io.Writer, plies []RawPly, opts ReadOptions) error {
	rows := make([]RawPly, len(plies))
	copy(rows, plies)
	if !opts.BottomUp {
		reverse(rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, p := range rows {
		rec := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(p.Orientation, 'g', -1, 64),
			strconv.FormatFloat(p.Thickness, 'g', -1, 64),
			p.Material,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func reverse(plies []RawPly) {
	for i, j := 0, len(plies)-1; i < j; i, j = i+1, j-1 {
		plies[i], plies[j] = plies[j], plies[i]
	}
}
