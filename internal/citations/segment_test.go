package citations

import (
	"strings"
	"testing"
)

func TestSegmentBracketedEntries(t *testing.T) {
	raw := strings.Join([]string{
		"[1] Smith, J. (2020). A study of things. Journal of Testing, 5(2), 10-20.",
		"[2] Jones, K. (2019). Another study. Proceedings of Testing, 1-10.",
		"[3] Adams, B. (2018). A third study. Journal of Results, 2(1), 5-9.",
	}, "\n")

	refs := Segment(raw)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d: %v", len(refs), refs)
	}
	for i, ref := range refs {
		if ref.OrderIndex != i {
			t.Errorf("reference %d has order index %d", i, ref.OrderIndex)
		}
	}
	if !strings.HasPrefix(refs[1].Text, "[2] Jones") {
		t.Errorf("second reference = %q", refs[1].Text)
	}
}

func TestSegmentSingleEntry(t *testing.T) {
	refs := Segment("[1] Smith, J. (2020). A Study. Journal X, 5(2), 10-20.")
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d: %v", len(refs), refs)
	}
	if refs[0].Text != "[1] Smith, J. (2020). A Study. Journal X, 5(2), 10-20." {
		t.Errorf("text = %q", refs[0].Text)
	}
	if refs[0].OrderIndex != 0 {
		t.Errorf("order index = %d", refs[0].OrderIndex)
	}
}

func TestSegmentFoldsWrappedLines(t *testing.T) {
	raw := strings.Join([]string{
		"[1] Smith, J. (2020). A very long study title that",
		"wraps onto the following line. Journal of Testing, 5(2), 10-20.",
		"[2] Jones, K. (2019). Another study. Proceedings of",
		"vol. 3, pp. 1-10.",
	}, "\n")

	refs := Segment(raw)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
	}
	if !strings.Contains(refs[0].Text, "that wraps onto the following line") {
		t.Errorf("wrapped line not folded: %q", refs[0].Text)
	}
	if !strings.Contains(refs[1].Text, "Proceedings of vol. 3") {
		t.Errorf("continuation not folded: %q", refs[1].Text)
	}
}

func TestSegmentNumberedFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "numbered with period",
			raw:  "1. Smith, J. (2020). A study of things. Journal of Testing, 5(2), 10-20.\n2. Jones, K. (2019). Another study. Proceedings of Testing, 1-10.",
		},
		{
			name: "plain number",
			raw:  "1 Smith, J. (2020). A study of things. Journal of Testing, 5(2), 10-20.\n2 Jones, K. (2019). Another study. Proceedings of Testing, 1-10.",
		},
		{
			name: "author names",
			raw:  "Smith, J. (2020). A study of things. Journal of Testing, 5(2), 10-20.\nJones, K. (2019). Another study. Proceedings of Testing, 1-10.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := Segment(tt.raw)
			if len(refs) != 2 {
				t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
			}
		})
	}
}

func TestSegmentBlankLineSeparates(t *testing.T) {
	raw := "Alzheimer Nederland organization report on care practices, published 2019.\n\nAnother Organization report about something else entirely, from 2020."

	refs := Segment(raw)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
	}
}

func TestSegmentFiltersNoise(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "placeholder", raw: "No references available"},
		{name: "too short", raw: "[1] Short. 2020."},
		{name: "no indicators", raw: "xxxx yyyy zzzz wwww qqqq rrrr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if refs := Segment(tt.raw); len(refs) != 0 {
				t.Errorf("expected no references, got %v", refs)
			}
		})
	}
}

func TestSegmentPreservesContent(t *testing.T) {
	raw := strings.Join([]string{
		"[1] Smith, J. (2020). A very long study title that",
		"wraps onto the following line. Journal of Testing, 5(2), 10-20.",
		"[2] Jones, K. (2019). Another study. Proceedings of Testing, 1-10.",
	}, "\n")

	refs := Segment(raw)
	joined := ""
	for _, ref := range refs {
		joined += ref.Text + " "
	}

	stripSpace := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}
	if stripSpace(joined) != stripSpace(raw) {
		t.Errorf("segmentation lost content:\n got %q\nwant %q", stripSpace(joined), stripSpace(raw))
	}
}
