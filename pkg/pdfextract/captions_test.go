package pdfextract

import (
	"strings"
	"testing"
)

func TestFindTableCaption(t *testing.T) {
	tests := []struct {
		name     string
		pageText string
		num      int
		want     string
	}{
		{
			name:     "colon form",
			pageText: "Table 2: Ablation study over model variants\nmore text",
			num:      2,
			want:     "Ablation study over model variants",
		},
		{
			name:     "period form",
			pageText: "TABLE 1. Summary statistics\n",
			num:      1,
			want:     "Summary statistics",
		},
		{
			name:     "roman numeral",
			pageText: "TABLE III: Comparison with prior work\n",
			num:      3,
			want:     "Comparison with prior work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindTableCaption(tt.pageText, tt.num)
			if got == nil || *got != tt.want {
				t.Errorf("FindTableCaption = %v, want %q", got, tt.want)
			}
		})
	}

	if got := FindTableCaption("no captions here", 1); got != nil {
		t.Errorf("FindTableCaption on plain text = %q, want nil", *got)
	}
}

func TestFindFigureCaption(t *testing.T) {
	got := FindFigureCaption("Fig. 4. Training loss over epochs\n", 4)
	if got == nil || *got != "Training loss over epochs" {
		t.Errorf("FindFigureCaption = %v, want %q", got, "Training loss over epochs")
	}

	if got := FindFigureCaption("Figure 9 is discussed elsewhere", 2); got != nil {
		t.Errorf("FindFigureCaption mismatched number = %q, want nil", *got)
	}
}

func TestCaptionTruncation(t *testing.T) {
	long := "Figure 1: " + strings.Repeat("x", 400)
	got := FindFigureCaption(long, 1)
	if got == nil {
		t.Fatal("expected a caption")
	}
	if len(*got) != maxCaptionLen+3 || !strings.HasSuffix(*got, "...") {
		t.Errorf("caption length = %d, want %d with ellipsis", len(*got), maxCaptionLen+3)
	}
}
