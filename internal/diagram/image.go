package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportProfile exports the through-thickness stress profile to an image
// file. The format follows the extension (png, svg, pdf); anything else is
// saved as png.
func ExportProfile(data ProfileData, plies []PlyRow, filename string) error {
	if len(data.Segments) == 0 {
		return errors.New("no plies to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Ply Stress %s Through Thickness", data.Component)
	p.X.Label.Text = data.Component
	p.Y.Label.Text = "z (from mid-plane)"

	// Stress is linear within a ply and jumps at interfaces
	var profile plotter.XYs
	minS, maxS := math.Inf(1), math.Inf(-1)
	for _, s := range data.Segments {
		profile = append(profile,
			plotter.XY{X: s.StressLower, Y: s.ZLower},
			plotter.XY{X: s.StressUpper, Y: s.ZUpper},
		)
		minS = math.Min(minS, math.Min(s.StressLower, s.StressUpper))
		maxS = math.Max(maxS, math.Max(s.StressLower, s.StressUpper))
	}
	minS = math.Min(minS, 0)
	maxS = math.Max(maxS, 0)
	span := maxS - minS
	if span == 0 {
		span = 1
	}

	// Ply interfaces
	for _, s := range data.Segments {
		iface, err := plotter.NewLine(plotter.XYs{
			{X: minS - 0.05*span, Y: s.ZLower},
			{X: maxS + 0.05*span, Y: s.ZLower},
		})
		if err != nil {
			return err
		}
		iface.LineStyle.Width = vg.Points(0.5)
		iface.LineStyle.Color = color.Gray{Y: 160}
		p.Add(iface)
	}
	last := data.Segments[len(data.Segments)-1]
	topFace, err := plotter.NewLine(plotter.XYs{
		{X: minS - 0.05*span, Y: last.ZUpper},
		{X: maxS + 0.05*span, Y: last.ZUpper},
	})
	if err != nil {
		return err
	}
	topFace.LineStyle.Width = vg.Points(0.5)
	topFace.LineStyle.Color = color.Gray{Y: 160}
	p.Add(topFace)

	// Zero stress reference
	zeroLine, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: data.Segments[0].ZLower},
		{X: 0, Y: last.ZUpper},
	})
	if err != nil {
		return err
	}
	zeroLine.LineStyle.Width = vg.Points(1)
	zeroLine.LineStyle.Color = color.Gray{Y: 128}
	zeroLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zeroLine)

	stressLine, err := plotter.NewLine(profile)
	if err != nil {
		return err
	}
	stressLine.LineStyle.Width = vg.Points(2)
	stressLine.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(stressLine)

	marks, err := plotter.NewScatter(profile)
	if err != nil {
		return err
	}
	marks.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	marks.GlyphStyle.Radius = vg.Points(2.5)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(marks)

	// Ply labels on the right
	if len(plies) > 0 {
		var xys plotter.XYs
		var labels []string
		for _, ply := range plies {
			xys = append(xys, plotter.XY{X: maxS + 0.08*span, Y: (ply.ZLower + ply.ZUpper) / 2})
			labels = append(labels, fmt.Sprintf("%.0f° %s", ply.Orientation, ply.Material))
		}
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return err
		}
		p.Add(l)
		p.X.Max = maxS + 0.4*span
	}

	width := 6 * vg.Inch
	height := 8 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
