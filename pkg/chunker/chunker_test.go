package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"paper-analysis-be/pkg/sections"
)

func TestChunkTextShortInput(t *testing.T) {
	c := New(500, 50)
	chunks := c.ChunkText("a short paragraph", "abstract")

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Index != 0 || chunks[0].Text != "a short paragraph" || chunks[0].Section != "abstract" {
		t.Errorf("chunk = %+v", chunks[0])
	}
	if chunks[0].ChunkType != "text" {
		t.Errorf("ChunkType = %q, want text", chunks[0].ChunkType)
	}
}

func TestChunkTextEmpty(t *testing.T) {
	c := New(500, 50)
	if chunks := c.ChunkText("   \n ", "abstract"); chunks != nil {
		t.Errorf("got %v, want nil for blank input", chunks)
	}
}

func TestChunkTextSentenceBoundary(t *testing.T) {
	c := New(40, 5)
	text := "First sentence here. Second sentence is a bit longer than the first one."

	chunks := c.ChunkText(text, "results")
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	// The first cut backtracks to the sentence boundary inside the window.
	if chunks[0].Text != "First sentence here." {
		t.Errorf("chunks[0].Text = %q, want first sentence", chunks[0].Text)
	}
}

func TestChunkTextCoverage(t *testing.T) {
	c := New(50, 10)
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa"}
	text := strings.Join(words, " ") + "."

	chunks := c.ChunkText(text, "full_text")
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	joined := " "
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has Index %d", i, ch.Index)
		}
		if len(ch.Text) > c.ChunkSize {
			t.Errorf("chunk %d length %d exceeds window %d", i, len(ch.Text), c.ChunkSize)
		}
		joined += ch.Text + " "
	}
	for _, w := range words {
		if !strings.Contains(joined, " "+w) {
			t.Errorf("word %q missing from chunk output", w)
		}
	}
}

func TestChunkTextOverlapDoesNotStall(t *testing.T) {
	// Overlap larger than the window must still advance.
	c := New(10, 20)
	text := strings.Repeat("abcdefghij", 5)

	chunks := c.ChunkText(text, "full_text")
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	var total int
	for _, ch := range chunks {
		total += len(ch.Text)
	}
	if total != len(text) {
		t.Errorf("chunks cover %d chars, want %d", total, len(text))
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(0, -1)
	if c.ChunkSize != DefaultChunkSize || c.Overlap != DefaultOverlap {
		t.Errorf("New(0, -1) = %+v, want defaults", c)
	}
}

func TestChunkSectionsGlobalIndices(t *testing.T) {
	c := New(30, 5)
	secs := []sections.SectionText{
		{Name: "abstract", Text: "One sentence. Another one here. And a third sentence."},
		{Name: "introduction", Text: "Intro body text. More intro words follow here."},
		{Name: "results", Text: ""},
	}

	chunks := c.ChunkSections(secs)
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want several across sections", len(chunks))
	}

	sawIntro := false
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has global index %d, want contiguous numbering", i, ch.Index)
		}
		if ch.Section == "introduction" {
			sawIntro = true
		}
		if ch.Section == "results" {
			t.Error("empty section produced a chunk")
		}
	}
	if !sawIntro {
		t.Error("no chunk carries the introduction section label")
	}
	if chunks[0].Section != "abstract" {
		t.Errorf("chunks[0].Section = %q, want abstract first", chunks[0].Section)
	}
}

func TestChunkDocumentFallsBackToFullText(t *testing.T) {
	c := New(500, 50)

	chunks := c.ChunkDocument("whole document body", nil)
	if len(chunks) != 1 || chunks[0].Section != FullTextSection {
		t.Errorf("chunks = %+v, want single full_text chunk", chunks)
	}

	// Sections present but all blank also fall back.
	blank := []sections.SectionText{{Name: "abstract", Text: "  "}}
	chunks = c.ChunkDocument("body", blank)
	if len(chunks) != 1 || chunks[0].Section != FullTextSection {
		t.Errorf("blank sections: chunks = %+v, want full_text fallback", chunks)
	}
}

func TestChunkDocumentPrefersSections(t *testing.T) {
	c := New(500, 50)
	secs := []sections.SectionText{{Name: "abstract", Text: "the abstract"}}

	chunks := c.ChunkDocument("full body", secs)
	if len(chunks) != 1 || chunks[0].Section != "abstract" {
		t.Errorf("chunks = %+v, want section-labeled chunk", chunks)
	}
}

func TestChunkTextMultibyteRuneBoundaries(t *testing.T) {
	c := New(10, 2)
	text := strings.Repeat("世界和平", 15) // 60 runes, 3 bytes each, no spaces

	chunks := c.ChunkText(text, "full_text")
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if !utf8.ValidString(ch.Text) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, ch.Text)
		}
	}

	// Every rune of the input survives in some chunk.
	joined := strings.Join(func() []string {
		texts := make([]string, len(chunks))
		for i, ch := range chunks {
			texts[i] = ch.Text
		}
		return texts
	}(), "")
	for _, r := range "世界和平" {
		if !strings.ContainsRune(joined, r) {
			t.Errorf("rune %q missing from chunk output", r)
		}
	}
}

func TestChunkTextWindowSmallerThanRune(t *testing.T) {
	c := New(2, 0)
	chunks := c.ChunkText("世界", "full_text")

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 single-rune chunks", len(chunks))
	}
	for i, want := range []string{"世", "界"} {
		if chunks[i].Text != want {
			t.Errorf("chunks[%d].Text = %q, want %q", i, chunks[i].Text, want)
		}
	}
}
