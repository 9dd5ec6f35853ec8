package service

import (
	"context"
	"sync"

	"paper-analysis-be/internal/pkg/logger"
	"paper-analysis-be/pkg/pdfextract"
	"paper-analysis-be/pkg/scan"
)

// nopLogger satisfies logger.ILogger without writing anywhere.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

// fakeParser is a scriptable DocumentParser.
type fakeParser struct {
	pageCount   int
	pages       []string
	text        string
	meta        pdfextract.Metadata
	info        map[string]string
	tables      []pdfextract.Table
	figures     []pdfextract.Figure
	refs        []pdfextract.Reference
	tablesPanic bool
	onTables    func()
	closed      bool
}

func (p *fakeParser) Close() error {
	p.closed = true
	return nil
}
func (p *fakeParser) PageCount() int { return p.pageCount }
func (p *fakeParser) RawTextByPage(maxPages int) []string {
	if maxPages < len(p.pages) {
		return p.pages[:maxPages]
	}
	return p.pages
}
func (p *fakeParser) ExtractText() string                  { return p.text }
func (p *fakeParser) ExtractMetadata() pdfextract.Metadata { return p.meta }
func (p *fakeParser) InfoFields() map[string]string        { return p.info }
func (p *fakeParser) ExtractTables() []pdfextract.Table {
	if p.onTables != nil {
		p.onTables()
	}
	if p.tablesPanic {
		panic("table detection blew up")
	}
	return p.tables
}
func (p *fakeParser) ExtractFigures(outputDir string) []pdfextract.Figure { return p.figures }
func (p *fakeParser) ExtractReferences() []pdfextract.Reference           { return p.refs }

// fakeEmbedder returns scripted vectors, falling back to a constant unit
// vector so every text embeds deterministically.
type fakeEmbedder struct {
	dim     int
	vectors map[string][]float32
	err     error
}

func newFakeEmbedder(dim int) *fakeEmbedder {
	return &fakeEmbedder{dim: dim, vectors: map[string][]float32{}}
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	v := make([]float32, f.dim)
	v[0] = 1
	return v, nil
}

func (f *fakeEmbedder) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Generate(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

// fakeOcr returns a scripted OCR outcome.
type fakeOcr struct {
	res *scan.OCRResult
	err error
}

func (f *fakeOcr) ExtractWithOCR(ctx context.Context, pdfPath string) (*scan.OCRResult, error) {
	return f.res, f.err
}

// fakeDoiFinder returns a fixed DOI.
type fakeDoiFinder struct {
	doi *string
}

func (f *fakeDoiFinder) ExtractAndValidate(ctx context.Context, text string, validate bool) *string {
	return f.doi
}

// fakePublisher captures published payloads.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	p.payloads = append(p.payloads, cp)
	return nil
}

func (p *fakePublisher) published() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.payloads...)
}

func strPtr(s string) *string { return &s }
