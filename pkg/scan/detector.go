package scan

import "strings"

// Scanned-document detection is a deliberately cheap text-length heuristic:
// pages of a scanned PDF carry almost no extractable text, so a low mean
// character count over the first few pages flags the document without any
// image analysis.

const (
	// DefaultSamplePages is how many leading pages are inspected.
	DefaultSamplePages = 3
	// scannedCharThreshold is the mean chars/page below which a document
	// counts as scanned.
	scannedCharThreshold = 50
	// confidenceScale maps mean chars/page onto a 0-1 confidence.
	confidenceScale = 500
)

// Detector decides whether a document is scanned from its raw per-page text.
type Detector struct {
	SamplePages int
}

func NewDetector() *Detector {
	return &Detector{SamplePages: DefaultSamplePages}
}

// IsScanned returns the verdict plus a confidence in [0,1]. pageTexts are
// the raw (stream-order) texts of the document's leading pages; passing more
// than SamplePages is fine, the excess is ignored.
func (d *Detector) IsScanned(pageTexts []string) (bool, float64) {
	n := d.SamplePages
	if n <= 0 {
		n = DefaultSamplePages
	}
	if len(pageTexts) < n {
		n = len(pageTexts)
	}
	if n == 0 {
		return false, 0
	}

	total := 0
	for _, t := range pageTexts[:n] {
		total += len(strings.TrimSpace(t))
	}
	mean := float64(total) / float64(n)

	confidence := 1 - min(mean/confidenceScale, 1)
	return mean < scannedCharThreshold, confidence
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
