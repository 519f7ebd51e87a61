package lamina

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// record is the on-disk material layout. Elastic data is nested under the
// "modulus" group; each value may be a JSON number or a numeric string.
//
//	{
//	  "name": "T300-5208",
//	  "modulus": {"E1": 181e9, "E2": 10.3e9, "G12": 7.17e9, "v12": 0.28}
//	}
type record struct {
	Name    string                     `json:"name"`
	Modulus map[string]json.RawMessage `json:"modulus"`
}

// LoadFile loads a single material record from a JSON file. The material is
// named after the file stem, matching how plies reference it.
func LoadFile(path string) (Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Material{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, data)
}

// LoadDir loads <dir>/<name>.json for every distinct name. A missing file is
// reported as ErrUnknownMaterial.
func LoadDir(dir string, names []string) (*Set, error) {
	var materials []Material
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		m, err := LoadFile(filepath.Join(dir, name+".json"))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q (no %s.json in %s)", ErrUnknownMaterial, name, name, dir)
		}
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return NewSet(materials...)
}

// LoadCatalog loads a JSON array of named material records
func LoadCatalog(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: catalog %s: %v", ErrMalformedField, path, err)
	}

	materials := make([]Material, 0, len(raws))
	for i, raw := range raws {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: catalog entry %d: %v", ErrMalformedField, i+1, err)
		}
		if strings.TrimSpace(rec.Name) == "" {
			return nil, &FieldError{Material: fmt.Sprintf("#%d", i+1), Field: "name", Kind: ErrMissingField}
		}
		m, err := fromRecord(rec.Name, rec)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return NewSet(materials...)
}

// Parse decodes one material record. A literal "Q" under "modulus" takes
// precedence over the four constants; without it all constants are required.
func Parse(name string, data []byte) (Material, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Material{}, &FieldError{Material: name, Field: "record", Kind: ErrMalformedField, Detail: err.Error()}
	}
	return fromRecord(name, rec)
}

func fromRecord(name string, rec record) (Material, error) {
	if rec.Modulus == nil {
		return Material{}, &FieldError{Material: name, Field: "modulus", Kind: ErrMissingField}
	}

	if raw, ok := rec.Modulus["Q"]; ok && !isNull(raw) {
		rows, err := parseMatrix(raw)
		if err != nil {
			return Material{}, &FieldError{Material: name, Field: "Q", Kind: ErrMalformedField, Detail: err.Error()}
		}
		q, err := QFromRows(rows)
		if err != nil {
			return Material{}, &FieldError{Material: name, Field: "Q", Kind: ErrMalformedField, Detail: err.Error()}
		}
		return NewMatrixMaterial(name, q)
	}

	var c Constants
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"E1", &c.E1},
		{"E2", &c.E2},
		{"G12", &c.G12},
		{"v12", &c.V12},
	} {
		raw, ok := rec.Modulus[f.key]
		if !ok || isNull(raw) {
			return Material{}, &FieldError{Material: name, Field: f.key, Kind: ErrMissingField}
		}
		v, err := parseNumber(raw)
		if err != nil {
			return Material{}, &FieldError{Material: name, Field: f.key, Kind: ErrMalformedField, Detail: err.Error()}
		}
		*f.dst = v
	}
	return NewMaterial(name, c)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseNumber accepts 12.5 as well as "12.5"
func parseNumber(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

func parseMatrix(raw json.RawMessage) ([][]float64, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("expected a 3×3 array: %v", err)
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		var cells []json.RawMessage
		if err := json.Unmarshal(r, &cells); err != nil {
			return nil, fmt.Errorf("row %d: expected an array", i+1)
		}
		out[i] = make([]float64, len(cells))
		for j, cell := range cells {
			v, err := parseNumber(cell)
			if err != nil {
				return nil, fmt.Errorf("term (%d,%d): %v", i+1, j+1, err)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

// Save writes m as a constants record that LoadFile reads back. Matrix
// materials are written with their literal Q.
func Save(path string, m Material) error {
	modulus := map[string]any{}
	if m.Source == FromMatrix {
		modulus["Q"] = m.nominal.Rows()
	} else {
		modulus["E1"] = m.Constants.E1
		modulus["E2"] = m.Constants.E2
		modulus["G12"] = m.Constants.G12
		modulus["v12"] = m.Constants.V12
	}
	data, err := json.MarshalIndent(map[string]any{
		"name":    m.Name,
		"modulus": modulus,
	}, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
