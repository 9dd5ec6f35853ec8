package pdfextract

import (
	"math"
	"sort"
	"strings"
)

// Column layout recovery. Two-column papers interleave lines across columns
// when glyphs are read in stream order; we look for a low-density vertical
// band (the gutter) in a horizontal projection of glyph centers and, if one
// exists, emit the left column before the right one.

const (
	gutterDensityRatio = 0.08 // trough must be below 8% of the peak density
	smoothingWindow    = 3
	lineTolerance      = 2.0 // glyphs within this vertical distance share a line
)

// ReadingOrderText assembles page text in natural reading order. It detects a
// column gutter via a density histogram over glyph x-centers; when found, the
// left and right halves are assembled independently and concatenated
// left-then-right. Without a gutter (or when either half comes out empty) the
// whole page is assembled top-to-bottom.
func ReadingOrderText(glyphs []Glyph, pageWidth float64) string {
	if len(glyphs) == 0 || pageWidth <= 0 {
		return ""
	}

	gapX, found := findGutter(glyphs, pageWidth)
	if found {
		padding := binSize(pageWidth) / 2
		var left, right []Glyph
		for _, g := range glyphs {
			center := g.X + g.W/2
			if center <= gapX+padding {
				left = append(left, g)
			}
			if center >= gapX-padding {
				right = append(right, g)
			}
		}
		leftText := strings.TrimSpace(assembleLines(left))
		rightText := strings.TrimSpace(assembleLines(right))
		if leftText != "" && rightText != "" {
			return leftText + "\n\n" + rightText
		}
	}

	return strings.TrimSpace(assembleLines(glyphs))
}

func binSize(pageWidth float64) float64 {
	bs := pageWidth / 100
	if bs < 8 {
		bs = 8
	}
	return bs
}

// findGutter returns the x position of a low-density trough in the middle
// half of the page, if one exists.
func findGutter(glyphs []Glyph, pageWidth float64) (float64, bool) {
	bs := binSize(pageWidth)
	n := int(pageWidth/bs) + 1
	bins := make([]float64, n)
	for _, g := range glyphs {
		center := g.X + g.W/2
		idx := int(center / bs)
		if idx >= 0 && idx < n {
			bins[idx]++
		}
	}

	// Moving-average smoothing so single empty bins inside a column do not
	// masquerade as gutters.
	smoothed := make([]float64, n)
	for i := range bins {
		lo := i - smoothingWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + smoothingWindow + 1
		if hi > n {
			hi = n
		}
		var sum float64
		for _, v := range bins[lo:hi] {
			sum += v
		}
		smoothed[i] = sum / float64(hi-lo)
	}

	var peak float64
	for _, v := range smoothed {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 0, false
	}

	start := int(float64(n) * 0.25)
	end := int(float64(n) * 0.75)
	for i := start; i < end; i++ {
		if smoothed[i] < gutterDensityRatio*peak {
			return float64(i) * bs, true
		}
	}
	return 0, false
}

// line is a group of glyphs sharing a baseline.
type line struct {
	y      float64
	glyphs []Glyph
}

// groupLines buckets glyphs into baselines, ordered top of page first
// (descending Y, since PDF coordinates grow upward).
func groupLines(glyphs []Glyph) []line {
	sorted := make([]Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > lineTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []line
	for _, g := range sorted {
		if len(lines) > 0 && math.Abs(lines[len(lines)-1].y-g.Y) <= lineTolerance {
			lines[len(lines)-1].glyphs = append(lines[len(lines)-1].glyphs, g)
			continue
		}
		lines = append(lines, line{y: g.Y, glyphs: []Glyph{g}})
	}
	return lines
}

func (l line) text() string {
	var b strings.Builder
	var prev *Glyph
	for i := range l.glyphs {
		g := l.glyphs[i]
		if prev != nil {
			// Insert a space when the horizontal gap exceeds a fraction of
			// the font size; extraction libraries often drop spaces.
			gap := g.X - (prev.X + prev.W)
			threshold := prev.Size * 0.25
			if threshold <= 0 {
				threshold = 1
			}
			if gap > threshold && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(g.Text, " ") {
				b.WriteString(" ")
			}
		}
		b.WriteString(g.Text)
		prev = &l.glyphs[i]
	}
	return strings.TrimRight(b.String(), " ")
}

func assembleLines(glyphs []Glyph) string {
	lines := groupLines(glyphs)
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := l.text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
