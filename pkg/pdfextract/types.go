package pdfextract

// Glyph is a positioned text fragment on a page, independent of the
// underlying PDF library. X/Y are PDF user-space coordinates (origin at the
// bottom-left corner, so larger Y means higher on the page). W is the
// rendered width and Size the font size in points.
type Glyph struct {
	Text string
	X    float64
	Y    float64
	W    float64
	Size float64
}

// Metadata holds document-level information recovered from the PDF info
// dictionary, supplemented by first-page layout heuristics.
type Metadata struct {
	Title        *string
	Authors      []string
	PageCount    int
	CreationDate *string
}

// Table is one detected table with its cell grid and optional caption.
type Table struct {
	Page     int        `json:"page"`
	TableNum int        `json:"table_num"`
	Rows     [][]string `json:"data"`
	Caption  *string    `json:"caption"`
	RowCount int        `json:"row_count"`
	ColCount int        `json:"col_count"`
}

// Figure is metadata for one embedded image. FilePath is nil when the image
// could not be rendered to disk; the metadata entry is kept regardless.
type Figure struct {
	Page      int     `json:"page"`
	FigureNum int     `json:"figure_num"`
	FilePath  *string `json:"file_path"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Caption   *string `json:"caption"`
}

// Reference is one parsed bibliography entry. Title/Year are best-effort and
// may be nil; Text always carries the raw entry.
type Reference struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Title   *string  `json:"title"`
	Authors []string `json:"authors"`
	Year    *int     `json:"year"`
}

// Result bundles everything the structural extractor recovers from one PDF.
type Result struct {
	PageCount  int
	Title      *string
	Authors    []string
	Text       string
	TextByPage []string
	Tables     []Table
	Figures    []Figure
	References []Reference
}
