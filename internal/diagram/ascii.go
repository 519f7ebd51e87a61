package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// PlyRow is one ply as drawn in the stack diagram
type PlyRow struct {
	Orientation float64 // degrees
	Thickness   float64
	Material    string
	ZLower      float64
	ZUpper      float64
}

// Segment is the linear stress variation through one ply
type Segment struct {
	ZLower, ZUpper           float64
	StressLower, StressUpper float64
}

// ProfileData holds one stress component through the laminate thickness
type ProfileData struct {
	Component string    // e.g. "σx"
	Segments  []Segment // bottom-first
}

// DrawStack draws the laminate bottom-first data top-down, one row per ply,
// shaded by fiber direction.
func DrawStack(plies []PlyRow) string {
	var sb strings.Builder

	widthChars := 30

	sb.WriteString("\n")
	sb.WriteString("  LAMINATE STACK (top)\n")
	sb.WriteString("  ────────────────────\n")

	if len(plies) == 0 {
		sb.WriteString("  (no plies)\n")
		return sb.String()
	}

	top := plies[len(plies)-1]
	sb.WriteString(fmt.Sprintf("  ┌%s┐  z = %+.4f\n", strings.Repeat("─", widthChars), top.ZUpper))

	for i := len(plies) - 1; i >= 0; i-- {
		p := plies[i]
		label := fmt.Sprintf(" %6.1f°  %s ", p.Orientation, p.Material)
		fill := strings.Repeat(fiberGlyph(p.Orientation), widthChars)
		row := []rune(fill)
		lr := []rune(label)
		if len(lr) < widthChars-2 {
			copy(row[2:], lr)
		}
		sb.WriteString(fmt.Sprintf("  │%s│  ply %d, t = %.4f\n", string(row), i+1, p.Thickness))

		if i > 0 {
			sb.WriteString(fmt.Sprintf("  ├%s┤  z = %+.4f\n", strings.Repeat("─", widthChars), p.ZLower))
		}
	}

	sb.WriteString(fmt.Sprintf("  └%s┘  z = %+.4f\n", strings.Repeat("─", widthChars), plies[0].ZLower))
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ═══ = 0°   ║║║ = 90°   /// = +θ   \\\\\\ = -θ\n")

	return sb.String()
}

// fiberGlyph picks a fill character that follows the fiber direction
func fiberGlyph(deg float64) string {
	a := math.Mod(deg, 180)
	if a > 90 {
		a -= 180
	} else if a <= -90 {
		a += 180
	}
	switch {
	case math.Abs(a) < 15:
		return "═"
	case math.Abs(a) > 75:
		return "║"
	case a > 0:
		return "/"
	default:
		return "\\"
	}
}

// Sample evaluates the piecewise-linear profile at n evenly spaced points
// from the bottom face to the top face.
func (d ProfileData) Sample(n int) (z, stress []float64) {
	if len(d.Segments) == 0 || n < 2 {
		return nil, nil
	}
	bottom := d.Segments[0].ZLower
	top := d.Segments[len(d.Segments)-1].ZUpper

	z = make([]float64, n)
	stress = make([]float64, n)
	seg := 0
	for i := 0; i < n; i++ {
		zi := bottom + (top-bottom)*float64(i)/float64(n-1)
		for seg < len(d.Segments)-1 && zi > d.Segments[seg].ZUpper {
			seg++
		}
		s := d.Segments[seg]
		t := 0.0
		if s.ZUpper > s.ZLower {
			t = (zi - s.ZLower) / (s.ZUpper - s.ZLower)
		}
		z[i] = zi
		stress[i] = s.StressLower + t*(s.StressUpper-s.StressLower)
	}
	return z, stress
}

// DrawProfile plots the stress component from the bottom face (left) to the
// top face (right).
func DrawProfile(d ProfileData) string {
	_, stress := d.Sample(60)
	if len(stress) == 0 {
		return "\n  (no plies to plot)\n"
	}

	graph := asciigraph.Plot(stress,
		asciigraph.Height(12),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s through thickness, bottom → top", d.Component)),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s DISTRIBUTION\n", strings.ToUpper(d.Component)))
	sb.WriteString("  ───────────────\n\n")
	sb.WriteString(graph)
	sb.WriteString("\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads by rune count so box-drawing and Greek text line up
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
