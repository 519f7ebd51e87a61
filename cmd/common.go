package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/golam/internal/diagram"
	"github.com/alexiusacademia/golam/internal/lamina"
	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/stress"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const rule = "───────────────────────────────────────────────────────────────"

// stackSource names where a laminate and its materials come from
type stackSource struct {
	laminate  string
	materials string // directory of <name>.json records
	catalog   string // single JSON array of records
	bottomUp  bool
}

func (s stackSource) validate() error {
	if s.laminate == "" {
		return errors.New("--laminate is required")
	}
	if (s.materials == "") == (s.catalog == "") {
		return errors.New("exactly one of --materials or --catalog is required")
	}
	return nil
}

// loadAnalysis reads the stack and its materials and assembles the ABD
func loadAnalysis(src stackSource) (*laminate.Analysis, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	raw, err := laminate.LoadStack(src.laminate, laminate.ReadOptions{BottomUp: src.bottomUp})
	if err != nil {
		return nil, fmt.Errorf("loading laminate: %w", err)
	}
	log.WithFields(logrus.Fields{
		"file":  src.laminate,
		"plies": len(raw),
	}).Debug("stack loaded")

	var set *lamina.Set
	if src.catalog != "" {
		set, err = lamina.LoadCatalog(src.catalog)
	} else {
		set, err = lamina.LoadDir(src.materials, laminate.MaterialNames(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("loading materials: %w", err)
	}
	log.WithField("materials", set.Names()).Debug("materials loaded")

	an, err := laminate.Analyze(raw, set)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"thickness": an.Thickness,
		"symmetric": an.ABD.IsSymmetricLayup(),
	}).Debug("ABD assembled")
	return an, nil
}

// printMatrix writes a labelled matrix in engineering notation
func printMatrix(out io.Writer, title string, m mat.Matrix) {
	fmt.Fprintf(out, "  %s\n", title)
	r, c := m.Dims()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i := 0; i < r; i++ {
		fmt.Fprint(w, "    ")
		for j := 0; j < c; j++ {
			fmt.Fprintf(w, "%.4e\t", m.At(i, j))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printPlyTable(out io.Writer, plies []laminate.Ply) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ply\tAngle\tThickness\tMaterial\tz lower\tz upper\n")
	fmt.Fprintf(w, "  ───\t─────\t─────────\t────────\t───────\t───────\n")
	for i := len(plies) - 1; i >= 0; i-- {
		p := plies[i]
		fmt.Fprintf(w, "  %d\t%.1f°\t%.4f\t%s\t%+.4f\t%+.4f\n",
			p.Index+1, p.Orientation, p.Thickness, p.Material, p.ZLower, p.ZUpper)
	}
	w.Flush()
}

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
}

func printSection(out io.Writer, title string) {
	fmt.Fprintf(out, "%s:\n", title)
	fmt.Fprintln(out, rule)
}

func plyRows(plies []laminate.Ply) []diagram.PlyRow {
	rows := make([]diagram.PlyRow, len(plies))
	for i, p := range plies {
		rows[i] = diagram.PlyRow{
			Orientation: p.Orientation,
			Thickness:   p.Thickness,
			Material:    p.Material,
			ZLower:      p.ZLower,
			ZUpper:      p.ZUpper,
		}
	}
	return rows
}

// profileData pairs the bottom and top points of each ply into segments of
// one global stress component (0 = σx, 1 = σy, 2 = τxy)
func profileData(points []stress.ProfilePoint, component int) diagram.ProfileData {
	names := [3]string{"σx", "σy", "τxy"}
	d := diagram.ProfileData{Component: names[component]}
	for i := 0; i+1 < len(points); i += 2 {
		lo, hi := points[i], points[i+1]
		d.Segments = append(d.Segments, diagram.Segment{
			ZLower:      lo.Z,
			ZUpper:      hi.Z,
			StressLower: lo.Stress[component],
			StressUpper: hi.Stress[component],
		})
	}
	return d
}
