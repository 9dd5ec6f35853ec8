package pdfextract

import (
	"fmt"
	"regexp"
	"strings"
)

// Caption search over page text. Captions are matched by ordinal patterns
// ("Table 2:", "Fig. 3.") and capped at 200 characters so a match never
// swallows the body text that follows it.

const maxCaptionLen = 200

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// FindTableCaption looks for the caption of the n-th table on a page.
func FindTableCaption(pageText string, tableNum int) *string {
	patterns := []string{
		fmt.Sprintf(`Table\s+%d[:\.]?\s*([^\n]+)`, tableNum),
		fmt.Sprintf(`TABLE\s+%d[:\.]?\s*([^\n]+)`, tableNum),
		fmt.Sprintf(`Tab\.\s*%d[:\.]?\s*([^\n]+)`, tableNum),
	}
	if tableNum >= 1 && tableNum <= len(romanNumerals) {
		r := romanNumerals[tableNum-1]
		patterns = append(patterns,
			fmt.Sprintf(`Table\s+%s[:\.]?\s*([^\n]+)`, r),
			fmt.Sprintf(`TABLE\s+%s[:\.]?\s*([^\n]+)`, r),
		)
	}
	return searchCaption(pageText, patterns)
}

// FindFigureCaption looks for the caption of the n-th figure on a page.
func FindFigureCaption(pageText string, figNum int) *string {
	patterns := []string{
		fmt.Sprintf(`Figure\s+%d[:\.]?\s*([^\n]+)`, figNum),
		fmt.Sprintf(`Fig\.\s*%d[:\.]?\s*([^\n]+)`, figNum),
		fmt.Sprintf(`FIG\.\s*%d[:\.]?\s*([^\n]+)`, figNum),
		fmt.Sprintf(`FIGURE\s+%d[:\.]?\s*([^\n]+)`, figNum),
	}
	return searchCaption(pageText, patterns)
}

func searchCaption(pageText string, patterns []string) *string {
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(pageText)
		if m == nil {
			continue
		}
		caption := strings.TrimSpace(m[1])
		if len(caption) > maxCaptionLen {
			caption = caption[:maxCaptionLen] + "..."
		}
		return &caption
	}
	return nil
}
