package pdfextract

import (
	"regexp"
	"strconv"
	"strings"
)

// Reference parsing: locate the bibliography and split it into entries with
// best-effort year/author/title fields. Swappable strategy functions so a
// proper citation parser can replace them later without touching callers.

var (
	refHeaderRes = []*regexp.Regexp{
		regexp.MustCompile(`\n\s*REFERENCES\s*\n`),
		regexp.MustCompile(`\n\s*References\s*\n`),
		regexp.MustCompile(`\n\s*BIBLIOGRAPHY\s*\n`),
		regexp.MustCompile(`\n\s*Bibliography\s*\n`),
		regexp.MustCompile(`\n\s*WORKS\s+CITED\s*\n`),
	}
	refEndRes = []*regexp.Regexp{
		regexp.MustCompile(`\n\s*APPENDIX`),
		regexp.MustCompile(`\n\s*Appendix`),
		regexp.MustCompile(`\n\s*ACKNOWLEDGMENTS`),
		regexp.MustCompile(`\n\s*Acknowledgments`),
	}

	// RE2 has no lookahead: the bracketed entry body excludes "[" so a greedy
	// match already stops at the next marker, and the numbered form spells out
	// "continuation line not starting with digits-dot" as an alternation.
	bracketedRefRe = regexp.MustCompile(`(?s)\[(\d+)\]\s*([^\[]+)`)
	numberedRefRe  = regexp.MustCompile(`(?m)(?:^|\n)(\d+)\.\s*([^\n]+(?:\n(?:\.[^\n]*|\d*[^\d.\n][^\n]*))*)`)

	quotedTitleRe = regexp.MustCompile(`"([^"]+)"`)
	parenYearRe   = regexp.MustCompile(`\((\d{4})\)`)
	bareYearRe    = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// ExtractReferencesSection slices the references/bibliography section out of
// the full document text, or returns "" when no header is present.
func ExtractReferencesSection(fullText string) string {
	for _, re := range refHeaderRes {
		loc := re.FindStringIndex(fullText)
		if loc == nil {
			continue
		}
		rest := fullText[loc[1]:]
		end := len(rest)
		for _, endRe := range refEndRes {
			if m := endRe.FindStringIndex(rest); m != nil && m[0] < end {
				end = m[0]
				break
			}
		}
		return strings.TrimSpace(rest[:end])
	}
	return ""
}

// ParseReferences splits a references section into entries. Strategies are
// tried in order: bracketed numerals, plain numbered list, blank-line blocks.
func ParseReferences(refText string) []Reference {
	if strings.TrimSpace(refText) == "" {
		return nil
	}

	type rawRef struct {
		index int
		text  string
	}
	var raw []rawRef

	for _, m := range bracketedRefRe.FindAllStringSubmatch(refText, -1) {
		idx, _ := strconv.Atoi(m[1])
		raw = append(raw, rawRef{index: idx, text: strings.TrimSpace(m[2])})
	}
	if len(raw) == 0 {
		for _, m := range numberedRefRe.FindAllStringSubmatch(refText, -1) {
			idx, _ := strconv.Atoi(m[1])
			raw = append(raw, rawRef{index: idx, text: strings.TrimSpace(m[2])})
		}
	}
	if len(raw) == 0 {
		for i, part := range strings.Split(refText, "\n\n") {
			part = strings.TrimSpace(part)
			if part != "" {
				raw = append(raw, rawRef{index: i + 1, text: part})
			}
		}
	}

	refs := make([]Reference, 0, len(raw))
	for _, r := range raw {
		refs = append(refs, Reference{
			Index:   r.index,
			Text:    r.text,
			Title:   extractRefTitle(r.text),
			Authors: extractRefAuthors(r.text),
			Year:    extractRefYear(r.text),
		})
	}
	return refs
}

func extractRefTitle(refText string) *string {
	if m := quotedTitleRe.FindStringSubmatch(refText); m != nil {
		t := m[1]
		return &t
	}
	return nil
}

// extractRefAuthors guesses the author list as the text before the first
// period, when short enough to plausibly be one.
func extractRefAuthors(refText string) []string {
	first, _, found := strings.Cut(refText, ".")
	if !found {
		first = refText
	}
	first = strings.TrimSpace(first)
	if first != "" && len(first) < 100 {
		return []string{first}
	}
	return nil
}

func extractRefYear(refText string) *int {
	for _, re := range []*regexp.Regexp{parenYearRe, bareYearRe} {
		if m := re.FindStringSubmatch(refText); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil {
				return &y
			}
		}
	}
	return nil
}
