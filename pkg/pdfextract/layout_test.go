package pdfextract

import (
	"math/rand"
	"testing"
)

// makeLine lays out words left to right starting at startX, 40pt apart.
func makeLine(words []string, startX, y float64) []Glyph {
	glyphs := make([]Glyph, 0, len(words))
	x := startX
	for _, w := range words {
		glyphs = append(glyphs, Glyph{Text: w, X: x, Y: y, W: 30, Size: 10})
		x += 40
	}
	return glyphs
}

func TestReadingOrderTextTwoColumns(t *testing.T) {
	// Two dense columns with a wide empty band between them. The left
	// column must come out in full before the right one, even though the
	// glyphs are supplied interleaved.
	var glyphs []Glyph
	glyphs = append(glyphs, makeLine([]string{"alpha", "bravo", "charlie", "delta", "echo"}, 40, 700)...)
	glyphs = append(glyphs, makeLine([]string{"golf", "hotel", "india", "juliet", "kilo"}, 320, 700)...)
	glyphs = append(glyphs, makeLine([]string{"lima", "mike", "november", "oscar", "papa"}, 40, 680)...)
	glyphs = append(glyphs, makeLine([]string{"quebec", "romeo", "sierra", "tango", "uniform"}, 320, 680)...)

	// Shuffle to simulate stream order.
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(glyphs), func(i, j int) { glyphs[i], glyphs[j] = glyphs[j], glyphs[i] })

	got := ReadingOrderText(glyphs, 600)
	want := "alpha bravo charlie delta echo\nlima mike november oscar papa\n\ngolf hotel india juliet kilo\nquebec romeo sierra tango uniform"
	if got != want {
		t.Errorf("ReadingOrderText = %q, want %q", got, want)
	}
}

func TestReadingOrderTextSingleColumn(t *testing.T) {
	var glyphs []Glyph
	glyphs = append(glyphs, makeLine([]string{"first", "line", "of", "text", "body", "here", "with", "many", "words", "filling", "the", "full", "width"}, 40, 700)...)
	glyphs = append(glyphs, makeLine([]string{"second", "line", "of", "text", "body", "here", "with", "many", "words", "filling", "the", "full", "width"}, 40, 680)...)

	got := ReadingOrderText(glyphs, 600)
	want := "first line of text body here with many words filling the full width\nsecond line of text body here with many words filling the full width"
	if got != want {
		t.Errorf("ReadingOrderText = %q, want %q", got, want)
	}
}

func TestReadingOrderTextEmpty(t *testing.T) {
	if got := ReadingOrderText(nil, 600); got != "" {
		t.Errorf("ReadingOrderText(nil) = %q, want empty", got)
	}
	if got := ReadingOrderText([]Glyph{{Text: "x", X: 10, Y: 10, W: 5, Size: 10}}, 0); got != "" {
		t.Errorf("ReadingOrderText with zero width = %q, want empty", got)
	}
}

func TestGroupLinesToleratesJitter(t *testing.T) {
	// Glyphs within lineTolerance of each other share a baseline.
	glyphs := []Glyph{
		{Text: "a", X: 10, Y: 100.0, W: 8, Size: 10},
		{Text: "b", X: 20, Y: 101.5, W: 8, Size: 10},
		{Text: "c", X: 10, Y: 80.0, W: 8, Size: 10},
	}
	lines := groupLines(glyphs)
	if len(lines) != 2 {
		t.Fatalf("groupLines returned %d lines, want 2", len(lines))
	}
	if len(lines[0].glyphs) != 2 {
		t.Errorf("first line has %d glyphs, want 2", len(lines[0].glyphs))
	}
}

func TestLineTextInsertsSpacesOnGaps(t *testing.T) {
	l := line{y: 100, glyphs: []Glyph{
		{Text: "Hello", X: 10, Y: 100, W: 30, Size: 10},
		{Text: "world", X: 50, Y: 100, W: 30, Size: 10}, // gap 10 > 2.5
		{Text: "!", X: 80.5, Y: 100, W: 3, Size: 10},    // gap 0.5, no space
	}}
	if got := l.text(); got != "Hello world!" {
		t.Errorf("line.text() = %q, want %q", got, "Hello world!")
	}
}
