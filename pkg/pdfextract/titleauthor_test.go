package pdfextract

import (
	"reflect"
	"testing"
)

func TestDetectTitleAuthors(t *testing.T) {
	glyphs := []Glyph{
		{Text: "Deep Learning for Protein Folding", X: 100, Y: 760, W: 300, Size: 18},
		{Text: "John A. Smith, Mary B. Jones and Alice Brown,", X: 120, Y: 730, W: 280, Size: 10},
		{Text: "Department of Computer Science, Example University", X: 110, Y: 710, W: 290, Size: 9},
	}

	title, authors := DetectTitleAuthors(glyphs, 800, nil)

	if title == nil || *title != "Deep Learning for Protein Folding" {
		t.Errorf("title = %v, want %q", title, "Deep Learning for Protein Folding")
	}
	want := []string{"John A. Smith", "Mary B. Jones", "Alice Brown"}
	if !reflect.DeepEqual(authors, want) {
		t.Errorf("authors = %v, want %v", authors, want)
	}
}

func TestDetectTitleAuthorsFiltersAffiliations(t *testing.T) {
	glyphs := []Glyph{
		{Text: "A Survey of Graph Networks", X: 100, Y: 760, W: 300, Size: 16},
		{Text: "research.group@example.edu", X: 120, Y: 730, W: 200, Size: 10},
		{Text: "Institute for Advanced Study", X: 120, Y: 710, W: 200, Size: 10},
	}

	_, authors := DetectTitleAuthors(glyphs, 800, nil)
	if len(authors) != 0 {
		t.Errorf("authors = %v, want none (all lines are affiliations)", authors)
	}
}

func TestDetectTitleAuthorsEmpty(t *testing.T) {
	title, authors := DetectTitleAuthors(nil, 800, nil)
	if title != nil || authors != nil {
		t.Errorf("expected nil results for empty glyphs, got %v %v", title, authors)
	}
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "comma separated",
			in:   "John Smith, Mary Jones",
			want: []string{"John Smith", "Mary Jones"},
		},
		{
			name: "and separator",
			in:   "John Smith and Mary Jones",
			want: []string{"John Smith", "Mary Jones"},
		},
		{
			name: "concatenated initialed names",
			in:   "John A. Smith Mary B. Jones",
			want: []string{"John A. Smith", "Mary B. Jones"},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAuthors(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAuthors(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
