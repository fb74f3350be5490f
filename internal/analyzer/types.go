// Package analyzer orchestrates the citation analysis pipeline: section
// splitting, reference segmentation, style classification, component
// extraction, and link validation.
package analyzer

import (
	"time"

	"github.com/janetyc/citecheck/internal/citations"
	"github.com/janetyc/citecheck/pkg/styles"
)

// Resolution is the tri-state outcome of checking an identifier.
type Resolution string

const (
	// ResolutionResolved means the identifier answered with a success
	// status, or matched a trusted format that needs no round trip.
	ResolutionResolved Resolution = "resolved"
	// ResolutionUnresolved covers failure statuses, transport errors,
	// and references with nothing to check.
	ResolutionUnresolved Resolution = "unresolved"
	// ResolutionRateLimited means the domain's request budget was
	// exhausted and no request was sent.
	ResolutionRateLimited Resolution = "rate_limited"
	// ResolutionSkipped means validation was disabled for the run.
	ResolutionSkipped Resolution = "skipped"
)

// Identifier kinds reported in validation results.
const (
	KindDOI  = "doi"
	KindURL  = "url"
	KindNone = "none"
)

// ValidationResult records what was found in a reference and whether it
// resolved.
type ValidationResult struct {
	IdentifierKind string     `json:"identifier_kind"`
	Identifier     string     `json:"identifier,omitempty"`
	Resolution     Resolution `json:"resolution"`
	StatusCode     int        `json:"status_code,omitempty"`
	Message        string     `json:"message,omitempty"`
	ScholarURL     string     `json:"scholar_url,omitempty"`
	CheckedAt      time.Time  `json:"checked_at"`
}

// ReferenceAnalysis bundles everything derived from one reference.
type ReferenceAnalysis struct {
	Reference      citations.RawReference `json:"reference"`
	Classification styles.Classification  `json:"classification"`
	Components     styles.Components      `json:"components"`
	FormatIssues   []string               `json:"format_issues,omitempty"`
	Validation     ValidationResult       `json:"validation"`
}

// Result is the full outcome of analyzing one document.
type Result struct {
	Body              string                       `json:"-"`
	ReferencesRaw     string                       `json:"-"`
	References        []ReferenceAnalysis          `json:"references"`
	InText            citations.InTextCitations    `json:"in_text_citations"`
	CitationSentences []citations.CitationSentence `json:"citation_sentences,omitempty"`
	StyleCounts       map[string]int               `json:"style_counts"`
	GeneratedAt       time.Time                    `json:"generated_at"`
	Elapsed           time.Duration                `json:"elapsed"`
}
