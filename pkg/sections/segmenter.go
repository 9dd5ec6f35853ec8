// Package sections partitions recovered paper text into the canonical
// research-paper sections by line-anchored header matching.
package sections

import (
	"regexp"
	"sort"
	"strings"
)

// Sections holds the canonical section texts; a nil field means the section
// was not found.
type Sections struct {
	Abstract     *string
	Introduction *string
	Methodology  *string
	Results      *string
	Conclusion   *string
	References   *string
}

// SectionText pairs a section name with its text, in document order. Used by
// the chunker, which needs deterministic ordering.
type SectionText struct {
	Name string
	Text string
}

// sectionOrder fixes the canonical ordering for downstream consumers.
var sectionOrder = []string{"abstract", "introduction", "methodology", "results", "conclusion", "references"}

var sectionHeaderRes = map[string]*regexp.Regexp{
	"abstract":     regexp.MustCompile(`(?i)^(abstract|summary)\s*$`),
	"introduction": regexp.MustCompile(`(?i)^(introduction|background)\s*$`),
	"methodology":  regexp.MustCompile(`(?i)^(methodology|methods|materials\s+and\s+methods)\s*$`),
	"results":      regexp.MustCompile(`(?i)^(results|findings)\s*$`),
	"conclusion":   regexp.MustCompile(`(?i)^(conclusion|conclusions|discussion)\s*$`),
	"references":   regexp.MustCompile(`(?i)^(references|bibliography|works\s+cited)\s*$`),
}

var (
	abstractFallbackRe = regexp.MustCompile(`(?is)abstract[:\s]*(.+?)(?:\n\s*\n|\n[A-Z][a-z]+:)`)
	keywordsRe         = regexp.MustCompile(`(?i)keywords?[:\s]*(.+?)\n\s*\n`)
	numberedRefRe      = regexp.MustCompile(`\[\d+\]`)
)

// Segmenter extracts sections from one document's text.
type Segmenter struct {
	text  string
	lines []string
}

func NewSegmenter(text string) *Segmenter {
	return &Segmenter{text: text, lines: strings.Split(text, "\n")}
}

// Extract finds section headers line by line and returns the text between
// consecutive headers. When no abstract header exists, a regex heuristic
// tries the document head.
func (s *Segmenter) Extract() Sections {
	type boundary struct {
		name string
		line int
	}
	// The last occurrence of each header wins, so a table of contents or a
	// running head never captures the real section body.
	lastLine := map[string]int{}
	for i, raw := range s.lines {
		line := strings.ToLower(strings.TrimSpace(raw))
		for name, re := range sectionHeaderRes {
			if re.MatchString(line) {
				lastLine[name] = i
				break
			}
		}
	}

	found := make([]boundary, 0, len(lastLine))
	for name, line := range lastLine {
		found = append(found, boundary{name: name, line: line})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].line < found[j].line })

	out := Sections{}
	for idx, b := range found {
		end := len(s.lines)
		if idx+1 < len(found) {
			end = found[idx+1].line
		}
		text := strings.TrimSpace(strings.Join(s.lines[b.line+1:end], "\n"))
		if text == "" {
			continue
		}
		switch b.name {
		case "abstract":
			out.Abstract = &text
		case "introduction":
			out.Introduction = &text
		case "methodology":
			out.Methodology = &text
		case "results":
			out.Results = &text
		case "conclusion":
			out.Conclusion = &text
		case "references":
			out.References = &text
		}
	}

	if out.Abstract == nil {
		if a := s.abstractHeuristic(); a != nil {
			out.Abstract = a
		}
	}
	return out
}

// abstractHeuristic looks for an inline "Abstract: ..." run within the first
// 100 lines when no standalone header was present.
func (s *Segmenter) abstractHeuristic() *string {
	n := len(s.lines)
	if n > 100 {
		n = 100
	}
	head := strings.Join(s.lines[:n], "\n")
	if m := abstractFallbackRe.FindStringSubmatch(head); m != nil {
		a := strings.TrimSpace(m[1])
		if a != "" {
			return &a
		}
	}
	return nil
}

// ExtractKeywords returns the entries of a "Keywords:" block, if present.
func (s *Segmenter) ExtractKeywords() []string {
	m := keywordsRe.FindStringSubmatch(s.text)
	if m == nil {
		return nil
	}
	var out []string
	for _, k := range regexp.MustCompile(`[;,]`).Split(m[1], -1) {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// CountReferences counts bibliography entries: bracketed numerals when
// present, otherwise non-empty lines of the references section.
func (s *Segmenter) CountReferences() int {
	secs := s.Extract()
	if secs.References == nil {
		return 0
	}
	if n := len(numberedRefRe.FindAllString(*secs.References, -1)); n > 0 {
		return n
	}
	count := 0
	for _, l := range strings.Split(*secs.References, "\n") {
		if strings.TrimSpace(l) != "" {
			count++
		}
	}
	return count
}

// Ordered flattens the sections into canonical document order, skipping
// missing ones.
func (s Sections) Ordered() []SectionText {
	get := func(name string) *string {
		switch name {
		case "abstract":
			return s.Abstract
		case "introduction":
			return s.Introduction
		case "methodology":
			return s.Methodology
		case "results":
			return s.Results
		case "conclusion":
			return s.Conclusion
		case "references":
			return s.References
		}
		return nil
	}
	var out []SectionText
	for _, name := range sectionOrder {
		if v := get(name); v != nil && strings.TrimSpace(*v) != "" {
			out = append(out, SectionText{Name: name, Text: *v})
		}
	}
	return out
}

// Count returns how many sections were recovered.
func (s Sections) Count() int {
	return len(s.Ordered())
}
