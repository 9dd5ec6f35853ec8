package pdfextract

import "strings"

// Heuristic table detection over positioned glyphs. A line is treated as a
// table row when it breaks into three or more cell runs separated by wide
// gaps; two or more consecutive rows with a compatible run count form a
// table. This recovers simple ruled and whitespace-aligned tables without a
// layout model; complex spanning cells are out of reach and come back as
// whatever rows the projection yields.

const (
	minTableCols    = 3
	minTableRows    = 2
	cellGapFontMult = 2.0 // a gap wider than 2x the font size splits cells
)

// DetectTables finds table candidates on one page and attaches captions
// found in the page's plain text.
func DetectTables(glyphs []Glyph, pageText string, page int) []Table {
	lines := groupLines(glyphs)

	type row struct {
		cells []string
	}
	var tables []Table
	var current []row

	flush := func() {
		if len(current) >= minTableRows {
			rows := make([][]string, len(current))
			cols := 0
			for i, r := range current {
				rows[i] = r.cells
				if len(r.cells) > cols {
					cols = len(r.cells)
				}
			}
			n := len(tables) + 1
			tables = append(tables, Table{
				Page:     page,
				TableNum: n,
				Rows:     rows,
				Caption:  FindTableCaption(pageText, n),
				RowCount: len(rows),
				ColCount: cols,
			})
		}
		current = nil
	}

	prevCols := 0
	for _, l := range lines {
		cells := splitCells(l.glyphs)
		if len(cells) >= minTableCols {
			// Rows of a table keep a roughly stable column count.
			if len(current) > 0 && abs(len(cells)-prevCols) > 1 {
				flush()
			}
			current = append(current, row{cells: cells})
			prevCols = len(cells)
			continue
		}
		flush()
	}
	flush()

	return tables
}

// splitCells breaks one line's glyphs into cell runs on wide horizontal gaps.
func splitCells(glyphs []Glyph) []string {
	if len(glyphs) == 0 {
		return nil
	}
	var cells []string
	var b strings.Builder
	prev := glyphs[0]
	b.WriteString(prev.Text)
	for _, g := range glyphs[1:] {
		gapThreshold := prev.Size * cellGapFontMult
		if gapThreshold <= 0 {
			gapThreshold = 10
		}
		if g.X-(prev.X+prev.W) > gapThreshold {
			if s := strings.TrimSpace(b.String()); s != "" {
				cells = append(cells, s)
			}
			b.Reset()
		}
		b.WriteString(g.Text)
		prev = g
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
