package pdfextract

import (
	"regexp"
	"strings"
	"unicode"
)

// First-page title/author recovery for PDFs whose info dictionary is empty.
// The title is usually the line with the largest mean font size near the top
// of the page; the author block follows it. Both are best-effort: missing a
// name is acceptable, reporting an affiliation line as a name is not.

const (
	titleRegionRatio = 0.35 // search the top 35% of the page
	minTitleSize     = 6.0  // reject stray marks pretending to be the title
)

// DefaultAffiliationDenylist matches institution/email/country vocabulary
// that disqualifies a candidate line from being an author name. English and
// venue specific; callers can supply their own list.
var DefaultAffiliationDenylist = []string{
	"@", "university", "institute", "dept", "department", "dep.",
	"school", "laboratory", "lab", "college", "center", "centre",
	"inc.", "llc", "corp", "company", "systems", "processing",
	"management", "technical", "state", "national", "orcid:",
	"usa", "russia", "china", "moscow", "beijing", "london",
	"new york", "california", "email", ".com", ".edu", ".org",
}

var (
	authorSeparatorRe  = regexp.MustCompile(`(?i),|;|\band\b`)
	concatenatedNameRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z]\.)+\s+[A-Z][a-z]+[*†‡§¶]?)`)
	footnoteMarkCutset = ".,;*†‡§¶# "
	nameShapeMinTokens = 2
	nameShapeMaxTokens = 5
)

type scoredLine struct {
	y    float64
	text string
	size float64
}

// DetectTitleAuthors runs the layout heuristic over first-page glyphs.
// pageHeight is needed because Y grows upward: the top region is Y above
// pageHeight*(1-titleRegionRatio).
func DetectTitleAuthors(glyphs []Glyph, pageHeight float64, denylist []string) (*string, []string) {
	if len(glyphs) == 0 {
		return nil, nil
	}
	if denylist == nil {
		denylist = DefaultAffiliationDenylist
	}

	all := buildScoredLines(glyphs)
	if len(all) == 0 {
		return nil, nil
	}

	topLines := make([]scoredLine, 0, len(all))
	cutoff := pageHeight * (1 - titleRegionRatio)
	for _, l := range all {
		if l.y > cutoff {
			topLines = append(topLines, l)
		}
	}
	if len(topLines) == 0 {
		if len(all) > 8 {
			topLines = all[:8]
		} else {
			topLines = all
		}
	}

	titleIdx := 0
	for i, l := range topLines {
		if l.size > topLines[titleIdx].size {
			titleIdx = i
		}
	}

	var title *string
	if topLines[titleIdx].size > minTitleSize {
		t := topLines[titleIdx].text
		title = &t
	}

	// The 1-3 lines after the title are the author-block candidate.
	var blockLines []string
	for i := titleIdx + 1; i < len(topLines) && i <= titleIdx+3; i++ {
		if len(topLines[i].text) < 3 {
			continue
		}
		blockLines = append(blockLines, topLines[i].text)
	}

	authors := filterAuthorCandidates(SplitAuthors(strings.Join(blockLines, " ")), denylist)

	// Nothing survived the filters: fall back to taking each raw block line
	// as one author entry, with only the strongest affiliation filters.
	if len(authors) == 0 {
		for _, bl := range blockLines {
			if len(strings.Fields(bl)) > 10 {
				continue
			}
			if containsAny(strings.ToLower(bl), []string{"@", "university", "institute", "dept", "department", "dep.", "inc.", "systems", "processing", "orcid:"}) {
				continue
			}
			authors = append(authors, strings.TrimSpace(bl))
		}
	}

	return title, authors
}

func buildScoredLines(glyphs []Glyph) []scoredLine {
	lines := groupLines(glyphs)
	out := make([]scoredLine, 0, len(lines))
	for _, l := range lines {
		text := l.text()
		if text == "" {
			continue
		}
		var sum float64
		var n int
		for _, g := range l.glyphs {
			if g.Size > 0 {
				sum += g.Size
				n++
			}
		}
		var mean float64
		if n > 0 {
			mean = sum / float64(n)
		}
		out = append(out, scoredLine{y: l.y, text: text, size: mean})
	}
	return out
}

// SplitAuthors splits an author string on commas, semicolons and "and",
// then re-splits any token group long enough to be several concatenated
// names (common when dense author blocks lose their delimiters).
func SplitAuthors(s string) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	var candidates []string
	for _, part := range authorSeparatorRe.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(strings.Fields(part)) > 5 {
			candidates = append(candidates, splitConcatenatedNames(part)...)
		} else {
			candidates = append(candidates, part)
		}
	}
	return candidates
}

// splitConcatenatedNames recovers individual names from a run like
// "John A. Smith Mary B. Jones" that carries no explicit separators.
func splitConcatenatedNames(s string) []string {
	if strings.Contains(s, "  ") {
		var names []string
		for _, part := range strings.Split(s, "  ") {
			part = strings.TrimSpace(part)
			if part != "" {
				names = append(names, splitSingleSpaceNames(part)...)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return splitSingleSpaceNames(s)
}

func splitSingleSpaceNames(s string) []string {
	matches := concatenatedNameRe.FindAllString(s, -1)
	if len(matches) >= 2 {
		out := make([]string, len(matches))
		for i, m := range matches {
			out[i] = strings.Trim(m, "*†‡§¶ ")
		}
		return out
	}

	words := strings.Fields(s)
	if len(words) >= 2 && len(words) <= 4 {
		capitals := 0
		for _, w := range words {
			if startsUpper(w) {
				capitals++
			}
		}
		if float64(capitals) >= float64(len(words))*0.5 {
			return []string{strings.Trim(s, "*†‡§¶ ")}
		}
	}
	return []string{s}
}

func filterAuthorCandidates(candidates []string, denylist []string) []string {
	var out []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if containsAny(strings.ToLower(c), denylist) {
			continue
		}
		cleaned := strings.Trim(c, footnoteMarkCutset)
		words := strings.Fields(cleaned)
		if len(words) < nameShapeMinTokens || len(words) > nameShapeMaxTokens {
			continue
		}
		capitals := 0
		for _, w := range words {
			if startsUpper(w) {
				capitals++
			}
		}
		if float64(capitals) >= float64(len(words))*0.6 {
			out = append(out, cleaned)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}
