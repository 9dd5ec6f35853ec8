package doi

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain form",
			text: "This work is registered as 10.1038/nature12373 in the index",
			want: []string{"10.1038/nature12373"},
		},
		{
			name: "doi prefix",
			text: "doi: 10.1000/xyz123 appears in the footer",
			want: []string{"10.1000/xyz123"},
		},
		{
			name: "url form",
			text: "available at https://doi.org/10.1103/PhysRevLett.116.061102 online",
			want: []string{"10.1103/PhysRevLett.116.061102"},
		},
		{
			name: "dx host",
			text: "see http://dx.doi.org/10.1000/182 for details",
			want: []string{"10.1000/182"},
		},
		{
			name: "duplicates collapse",
			text: "10.1000/xyz123 and again doi:10.1000/xyz123",
			want: []string{"10.1000/xyz123"},
		},
		{
			name: "no doi",
			text: "a paper without any identifier at all",
			want: nil,
		},
		{
			name: "rejects non-canonical prefix",
			text: "version 11.2345/not-a-doi here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFromPDFInfo(t *testing.T) {
	got := FromPDFInfo(map[string]string{"Subject": "doi:10.1234/abcd"})
	if got == nil || *got != "10.1234/abcd" {
		t.Errorf("FromPDFInfo = %v, want 10.1234/abcd", got)
	}

	if got := FromPDFInfo(map[string]string{"Title": "no identifiers"}); got != nil {
		t.Errorf("FromPDFInfo without DOI = %q, want nil", *got)
	}

	if got := FromPDFInfo(nil); got != nil {
		t.Errorf("FromPDFInfo(nil) = %q, want nil", *got)
	}
}
