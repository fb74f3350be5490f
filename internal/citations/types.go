// Package citations locates the reference section of an extracted paper
// and cuts it into individual reference entries, plus scans the body for
// in-text citation markers.
package citations

// Section is the result of splitting a document into its body and its
// reference section. ReferencesRaw is empty when no section was found.
type Section struct {
	Body          string `json:"-"`
	ReferencesRaw string `json:"-"`
}

// RawReference is one segmented, filtered reference entry. Text holds
// the entry with internal line wraps collapsed to single spaces;
// OrderIndex is its zero-based position in the reference list.
type RawReference struct {
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index"`
}

// InTextCitations collects the citation markers found in body text.
// Numbered holds the digits of every "[n]" marker in order of
// appearance; AuthorYear holds "(Name, Year)" groups, semicolon lists
// included, with the parentheses stripped.
type InTextCitations struct {
	Numbered   []string `json:"numbered"`
	AuthorYear []string `json:"author_year"`
}

// CitationSentence is a body sentence that carries at least one
// citation marker.
type CitationSentence struct {
	Sentence  string   `json:"sentence"`
	Citations []string `json:"citations"`
}
