package scan

import (
	"context"
	"fmt"
	"strings"
)

// OCR runs against an external engine reached through two narrow interfaces:
// a rasterizer turning PDF pages into images and a recognizer turning images
// into text. The pipeline only ever deals in page texts.

const (
	DefaultDPI  = 300
	DefaultLang = "eng"
	// OCRConfidenceThreshold gates automatic OCR: a scanned verdict below
	// this confidence falls back to direct extraction.
	OCRConfidenceThreshold = 0.7
)

// Rasterizer renders every page of a PDF to an encoded image.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string, dpi int) ([][]byte, error)
}

// Recognizer extracts text from one page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, lang string) (string, error)
}

// OCRResult is the outcome of a full-document OCR pass.
type OCRResult struct {
	FullText        string
	PageCount       int
	TotalChars      int
	AvgCharsPerPage float64
}

// Processor drives OCR extraction for whole documents.
type Processor struct {
	rasterizer Rasterizer
	recognizer Recognizer
	DPI        int
	Lang       string
}

func NewProcessor(rasterizer Rasterizer, recognizer Recognizer, dpi int, lang string) *Processor {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if lang == "" {
		lang = DefaultLang
	}
	return &Processor{
		rasterizer: rasterizer,
		recognizer: recognizer,
		DPI:        dpi,
		Lang:       lang,
	}
}

// ExtractWithOCR rasterizes the document and recognizes every page,
// concatenating page texts with blank-line separators.
func (p *Processor) ExtractWithOCR(ctx context.Context, pdfPath string) (*OCRResult, error) {
	if p.rasterizer == nil || p.recognizer == nil {
		return nil, fmt.Errorf("ocr engine not configured")
	}

	images, err := p.rasterizer.Rasterize(ctx, pdfPath, p.DPI)
	if err != nil {
		return nil, fmt.Errorf("rasterize failed: %w", err)
	}

	pageTexts := make([]string, 0, len(images))
	totalChars := 0
	for i, img := range images {
		text, err := p.recognizer.Recognize(ctx, img, p.Lang)
		if err != nil {
			return nil, fmt.Errorf("ocr failed on page %d: %w", i+1, err)
		}
		pageTexts = append(pageTexts, text)
		totalChars += len(strings.TrimSpace(text))
	}

	result := &OCRResult{
		FullText:   strings.Join(pageTexts, "\n\n"),
		PageCount:  len(images),
		TotalChars: totalChars,
	}
	if len(images) > 0 {
		result.AvgCharsPerPage = float64(totalChars) / float64(len(images))
	}
	return result, nil
}

// ShouldApplyOCR encodes the gate used by the pipeline: OCR only when the
// detector is confident the document is scanned, or when explicitly forced.
func ShouldApplyOCR(isScanned bool, confidence float64, force bool) bool {
	return force || (isScanned && confidence > OCRConfidenceThreshold)
}
