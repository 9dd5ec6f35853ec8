// Package chunker splits document text into overlapping windows sized for
// embedding, preferring sentence and word boundaries over hard cuts.
package chunker

import (
	"strings"
	"unicode/utf8"

	"paper-analysis-be/pkg/sections"
)

const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
	// FullTextSection labels chunks produced without section information.
	FullTextSection = "full_text"
)

// Chunk is one text window destined for embedding.
type Chunk struct {
	Index      int
	Text       string
	Section    string
	ChunkType  string
	PageNumber *int
}

// Chunker carries the window parameters.
type Chunker struct {
	ChunkSize int
	Overlap   int
}

func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	return &Chunker{ChunkSize: chunkSize, Overlap: overlap}
}

// sentence-then-word boundary delimiters, in preference order
var boundaryDelimiters = []string{". ", "! ", "? ", "\n\n", "\n"}

// ChunkText walks text in windows of ChunkSize characters, backtracking each
// cut to the nearest sentence boundary inside the window, else the nearest
// word boundary. Windows advance by end-Overlap; a window that would not
// advance (overlap >= window, pathological input) jumps to end instead.
func (c *Chunker) ChunkText(text, section string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []Chunk
	start := 0
	index := 0

	for start < len(text) {
		end := snapToRuneStart(text, start+c.ChunkSize)
		if end < len(text) {
			end = c.backtrack(text, start, end)
		} else {
			end = len(text)
		}
		if end <= start {
			// window smaller than one rune, take it whole
			_, size := utf8.DecodeRuneInString(text[start:])
			end = start + size
		}

		if t := strings.TrimSpace(text[start:end]); t != "" {
			chunks = append(chunks, Chunk{
				Index:     index,
				Text:      t,
				Section:   section,
				ChunkType: "text",
			})
			index++
		}

		next := end
		if end < len(text) {
			next = snapToRuneStart(text, end-c.Overlap)
		}
		if next <= start {
			next = end
		}
		if next <= start {
			break
		}
		start = next
	}
	return chunks
}

// snapToRuneStart moves i left to the nearest rune start so a cut never
// splits a multi-byte character.
func snapToRuneStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

func (c *Chunker) backtrack(text string, start, end int) int {
	for _, delim := range boundaryDelimiters {
		if idx := strings.LastIndex(text[start:end], delim); idx > 0 {
			return start + idx + len(delim)
		}
	}
	if idx := strings.LastIndex(text[start:end], " "); idx > 0 {
		return start + idx
	}
	return end
}

// ChunkSections chunks each section independently and renumbers indices
// globally in section order, keeping chunk_index contiguous per document.
func (c *Chunker) ChunkSections(secs []sections.SectionText) []Chunk {
	var all []Chunk
	global := 0
	for _, s := range secs {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		for _, ch := range c.ChunkText(s.Text, s.Name) {
			ch.Index = global
			global++
			all = append(all, ch)
		}
	}
	return all
}

// ChunkDocument prefers section-aware chunking and falls back to treating
// the full text as a single pseudo-section.
func (c *Chunker) ChunkDocument(fullText string, secs []sections.SectionText) []Chunk {
	for _, s := range secs {
		if strings.TrimSpace(s.Text) != "" {
			return c.ChunkSections(secs)
		}
	}
	return c.ChunkText(fullText, FullTextSection)
}
