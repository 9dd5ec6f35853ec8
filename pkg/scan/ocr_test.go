package scan

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRasterizer struct {
	pages [][]byte
	err   error
	dpi   int
}

func (f *fakeRasterizer) Rasterize(_ context.Context, _ string, dpi int) ([][]byte, error) {
	f.dpi = dpi
	return f.pages, f.err
}

type fakeRecognizer struct {
	texts map[string]string
	err   error
	lang  string
}

func (f *fakeRecognizer) Recognize(_ context.Context, image []byte, lang string) (string, error) {
	f.lang = lang
	if f.err != nil {
		return "", f.err
	}
	return f.texts[string(image)], nil
}

func TestExtractWithOCR(t *testing.T) {
	ras := &fakeRasterizer{pages: [][]byte{[]byte("p1"), []byte("p2")}}
	rec := &fakeRecognizer{texts: map[string]string{"p1": "page one text", "p2": "page two text"}}

	p := NewProcessor(ras, rec, 0, "")
	res, err := p.ExtractWithOCR(context.Background(), "/tmp/scan.pdf")
	if err != nil {
		t.Fatalf("ExtractWithOCR error: %v", err)
	}

	if res.FullText != "page one text\n\npage two text" {
		t.Errorf("FullText = %q", res.FullText)
	}
	if res.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", res.PageCount)
	}
	if res.TotalChars != len("page one text")+len("page two text") {
		t.Errorf("TotalChars = %d", res.TotalChars)
	}
	if res.AvgCharsPerPage != float64(res.TotalChars)/2 {
		t.Errorf("AvgCharsPerPage = %f", res.AvgCharsPerPage)
	}

	// Defaults applied when zero values are passed.
	if ras.dpi != DefaultDPI {
		t.Errorf("dpi = %d, want default %d", ras.dpi, DefaultDPI)
	}
	if rec.lang != DefaultLang {
		t.Errorf("lang = %q, want default %q", rec.lang, DefaultLang)
	}
}

func TestExtractWithOCRRasterizeFailure(t *testing.T) {
	ras := &fakeRasterizer{err: errors.New("ghostscript missing")}
	p := NewProcessor(ras, &fakeRecognizer{}, 300, "eng")

	_, err := p.ExtractWithOCR(context.Background(), "/tmp/scan.pdf")
	if err == nil || !strings.Contains(err.Error(), "rasterize failed") {
		t.Errorf("err = %v, want rasterize failure", err)
	}
}

func TestExtractWithOCRRecognizeFailure(t *testing.T) {
	ras := &fakeRasterizer{pages: [][]byte{[]byte("p1")}}
	rec := &fakeRecognizer{err: errors.New("tesseract crashed")}
	p := NewProcessor(ras, rec, 300, "eng")

	_, err := p.ExtractWithOCR(context.Background(), "/tmp/scan.pdf")
	if err == nil || !strings.Contains(err.Error(), "page 1") {
		t.Errorf("err = %v, want page-attributed failure", err)
	}
}

func TestExtractWithOCRUnconfigured(t *testing.T) {
	p := NewProcessor(nil, nil, 300, "eng")
	if _, err := p.ExtractWithOCR(context.Background(), "x.pdf"); err == nil {
		t.Error("expected error for unconfigured engine")
	}
}
