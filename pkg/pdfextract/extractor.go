package pdfextract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor recovers the structure of one research-paper PDF: column-ordered
// text, metadata, tables, figures and references. Sub-extraction failures
// are swallowed per call site so one bad table never sinks the document.
type Extractor struct {
	path   string
	file   *os.File
	reader *pdf.Reader

	// AffiliationDenylist overrides the default author-filter vocabulary.
	AffiliationDenylist []string
	// Renderer rasterizes figure regions to disk; nil records metadata only.
	Renderer FigureRenderer
}

// FigureRenderer saves the figNum-th image of a page to outPath.
type FigureRenderer interface {
	RenderFigure(pdfPath string, page, figNum int, outPath string) error
}

const defaultPageWidth, defaultPageHeight = 612.0, 792.0

func Open(path string) (*Extractor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}
	return &Extractor{path: path, file: f, reader: r}, nil
}

func (e *Extractor) Close() error {
	return e.file.Close()
}

func (e *Extractor) PageCount() int {
	return e.reader.NumPage()
}

// pageGlyphs converts one page's content stream into positioned glyphs plus
// the page dimensions.
func (e *Extractor) pageGlyphs(pageNum int) ([]Glyph, float64, float64) {
	page := e.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, defaultPageWidth, defaultPageHeight
	}

	w, h := pageSize(page)

	content := page.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			Text: t.S,
			X:    t.X,
			Y:    t.Y,
			W:    t.W,
			Size: t.FontSize,
		})
	}
	return glyphs, w, h
}

func pageSize(page pdf.Page) (float64, float64) {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return defaultPageWidth, defaultPageHeight
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w <= 0 || h <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return w, h
}

// pagePlainText is the library's own stream-order extraction, used for
// caption search and as the fallback when the layout heuristic yields
// nothing.
func (e *Extractor) pagePlainText(pageNum int) string {
	page := e.reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// extractPageText produces one page's text in reading order, falling back to
// stream-order extraction when the heuristic comes up empty.
func (e *Extractor) extractPageText(pageNum int) string {
	glyphs, w, _ := e.pageGlyphs(pageNum)
	if text := ReadingOrderText(glyphs, w); text != "" {
		return text
	}
	return strings.TrimSpace(e.pagePlainText(pageNum))
}

// ExtractText joins all pages in reading order with blank-line separators.
func (e *Extractor) ExtractText() string {
	var pages []string
	for i := 1; i <= e.reader.NumPage(); i++ {
		if t := e.extractPageText(i); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}

// ExtractTextByPage returns per-page text, one entry per page even when a
// page is empty.
func (e *Extractor) ExtractTextByPage() []string {
	out := make([]string, 0, e.reader.NumPage())
	for i := 1; i <= e.reader.NumPage(); i++ {
		out = append(out, e.extractPageText(i))
	}
	return out
}

// RawTextByPage skips the layout heuristic; used by scanned-document
// detection which only needs character counts.
func (e *Extractor) RawTextByPage(maxPages int) []string {
	n := e.reader.NumPage()
	if maxPages > 0 && maxPages < n {
		n = maxPages
	}
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, e.pagePlainText(i))
	}
	return out
}

// ExtractMetadata reads the info dictionary, then fills missing title/author
// fields from first-page layout heuristics.
func (e *Extractor) ExtractMetadata() Metadata {
	meta := Metadata{PageCount: e.reader.NumPage()}

	info := e.reader.Trailer().Key("Info")
	if !info.IsNull() {
		if t := infoString(info, "Title"); t != "" {
			meta.Title = &t
		}
		if a := infoString(info, "Author"); a != "" {
			meta.Authors = SplitAuthors(a)
		}
		if d := infoString(info, "CreationDate"); d != "" {
			meta.CreationDate = &d
		}
	}

	if (meta.Title == nil || len(meta.Authors) == 0) && e.reader.NumPage() > 0 {
		glyphs, _, h := e.pageGlyphs(1)
		title, authors := DetectTitleAuthors(glyphs, h, e.AffiliationDenylist)
		if meta.Title == nil && title != nil {
			meta.Title = title
		}
		if len(meta.Authors) == 0 {
			meta.Authors = authors
		}
	}
	return meta
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.IsNull() || v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// InfoFields exposes the raw info dictionary entries that may hide a DOI
// (Subject, Keywords and friends).
func (e *Extractor) InfoFields() map[string]string {
	out := map[string]string{}
	info := e.reader.Trailer().Key("Info")
	if info.IsNull() {
		return out
	}
	for _, k := range info.Keys() {
		if s := infoString(info, k); s != "" {
			out[k] = s
		}
	}
	return out
}

// ExtractTables runs the glyph-grid detector page by page.
func (e *Extractor) ExtractTables() []Table {
	var tables []Table
	for i := 1; i <= e.reader.NumPage(); i++ {
		glyphs, _, _ := e.pageGlyphs(i)
		if len(glyphs) == 0 {
			continue
		}
		tables = append(tables, DetectTables(glyphs, e.pagePlainText(i), i)...)
	}
	return tables
}

// ExtractFigures enumerates embedded image XObjects per page. The metadata
// entry is recorded even when rendering fails; FilePath stays nil then.
func (e *Extractor) ExtractFigures(outputDir string) []Figure {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(e.path), "figures")
	}
	_ = os.MkdirAll(outputDir, 0o755)
	stem := strings.TrimSuffix(filepath.Base(e.path), filepath.Ext(e.path))

	var figures []Figure
	for pageNum := 1; pageNum <= e.reader.NumPage(); pageNum++ {
		page := e.reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText := e.pagePlainText(pageNum)

		xobjects := page.V.Key("Resources").Key("XObject")
		if xobjects.IsNull() {
			continue
		}
		figNum := 0
		for _, name := range xobjects.Keys() {
			obj := xobjects.Key(name)
			if obj.Key("Subtype").Name() != "Image" {
				continue
			}
			figNum++

			fig := Figure{
				Page:      pageNum,
				FigureNum: figNum,
				Width:     float64(obj.Key("Width").Int64()),
				Height:    float64(obj.Key("Height").Int64()),
				Caption:   FindFigureCaption(pageText, figNum),
			}

			if e.Renderer != nil {
				outPath := filepath.Join(outputDir, fmt.Sprintf("%s_p%d_fig%d.png", stem, pageNum, figNum))
				if err := e.Renderer.RenderFigure(e.path, pageNum, figNum, outPath); err == nil {
					fig.FilePath = &outPath
				}
			}
			figures = append(figures, fig)
		}
	}
	return figures
}

// ExtractReferences parses the bibliography out of the full document text.
func (e *Extractor) ExtractReferences() []Reference {
	section := ExtractReferencesSection(e.ExtractText())
	if section == "" {
		return nil
	}
	return ParseReferences(section)
}

// ExtractAll runs the whole structural extraction in one pass.
func (e *Extractor) ExtractAll(figureDir string) *Result {
	meta := e.ExtractMetadata()
	text := e.ExtractText()
	return &Result{
		PageCount:  meta.PageCount,
		Title:      meta.Title,
		Authors:    meta.Authors,
		Text:       text,
		TextByPage: e.ExtractTextByPage(),
		Tables:     e.ExtractTables(),
		Figures:    e.ExtractFigures(figureDir),
		References: ParseReferences(ExtractReferencesSection(text)),
	}
}
