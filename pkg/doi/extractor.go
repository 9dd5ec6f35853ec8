// Package doi extracts and validates Digital Object Identifiers from
// recovered paper text and PDF metadata.
package doi

import (
	"regexp"
	"strings"
)

var doiPatterns = []*regexp.Regexp{
	// Standard DOI form: 10.xxxx/suffix
	regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:A-Z0-9]+`),
	// With doi: prefix
	regexp.MustCompile(`(?i)doi:\s*10\.\d{4,9}/[-._;()/:A-Z0-9]+`),
	// doi.org URL forms
	regexp.MustCompile(`(?i)(?:https?://)?(?:dx\.)?doi\.org/(10\.\d{4,9}/[-._;()/:A-Z0-9]+)`),
}

var (
	doiPrefixRe = regexp.MustCompile(`(?i)^doi:\s*`)
	doiURLRe    = regexp.MustCompile(`(?i)^(?:https?://)?(?:dx\.)?doi\.org/`)
)

// Extract returns the unique DOI candidates found in text, stripped of
// doi:/URL prefixes. Only candidates with the canonical 10. prefix survive.
func Extract(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, re := range doiPatterns {
		for _, m := range re.FindAllString(text, -1) {
			d := strings.TrimSpace(m)
			d = doiPrefixRe.ReplaceAllString(d, "")
			d = doiURLRe.ReplaceAllString(d, "")
			if !strings.HasPrefix(d, "10.") {
				continue
			}
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// FromPDFInfo scans PDF info-dictionary fields that commonly hide a DOI.
func FromPDFInfo(info map[string]string) *string {
	for _, field := range []string{"Subject", "doi", "DOI", "Keywords"} {
		if v, ok := info[field]; ok {
			if dois := Extract(v); len(dois) > 0 {
				return &dois[0]
			}
		}
	}
	return nil
}
