package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// styleCount is one row of the style summary.
type styleCount struct {
	style string
	count int
}

// sortedStyleCounts orders styles by descending count, then name, so
// report output is stable.
func sortedStyleCounts(counts map[string]int) []styleCount {
	rows := make([]styleCount, 0, len(counts))
	for style, count := range counts {
		rows = append(rows, styleCount{style: style, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].style < rows[j].style
	})
	return rows
}

// WriteReport renders the full analysis as a markdown report.
func WriteReport(w io.Writer, result *Result) error {
	var b strings.Builder

	b.WriteString("# Citation Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total References: %d\n\n", len(result.References))

	b.WriteString("## Citation Style Summary\n")
	for _, row := range sortedStyleCounts(result.StyleCounts) {
		percentage := float64(row.count) / float64(len(result.References)) * 100
		fmt.Fprintf(&b, "- %s: %d (%.1f%%)\n", row.style, row.count, percentage)
	}
	b.WriteString("\n")

	if len(result.InText.Numbered)+len(result.InText.AuthorYear) > 0 {
		b.WriteString("## In-Text Citations\n")
		fmt.Fprintf(&b, "- Numbered markers: %d\n", len(result.InText.Numbered))
		fmt.Fprintf(&b, "- Author-year markers: %d\n\n", len(result.InText.AuthorYear))
	}

	b.WriteString("## Detailed Reference Analysis\n\n")
	for i, ref := range result.References {
		fmt.Fprintf(&b, "### Reference %d\n", i+1)
		fmt.Fprintf(&b, "**Text:** %s\n", ref.Reference.Text)
		fmt.Fprintf(&b, "**Style:** %s (Confidence: %.1f%%)\n", ref.Classification.Style, ref.Classification.Confidence*100)

		writeValidationLines(&b, ref.Validation)

		if len(ref.FormatIssues) > 0 {
			fmt.Fprintf(&b, "**Format Issues:** %s\n", strings.Join(ref.FormatIssues, ", "))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeValidationLines(b *strings.Builder, v ValidationResult) {
	switch v.IdentifierKind {
	case KindDOI:
		fmt.Fprintf(b, "**DOI:** %s (%s)\n", v.Identifier, resolutionLabel(v.Resolution))
	case KindURL:
		fmt.Fprintf(b, "**URL:** %s (%s)\n", v.Identifier, resolutionLabel(v.Resolution))
	default:
		b.WriteString("**Identifier:** none found\n")
	}
	fmt.Fprintf(b, "**Overall Valid:** %s\n", yesNo(v.Resolution == ResolutionResolved))
	if v.ScholarURL != "" {
		fmt.Fprintf(b, "**Scholar:** %s\n", v.ScholarURL)
	}
}

func resolutionLabel(r Resolution) string {
	switch r {
	case ResolutionResolved:
		return "Valid"
	case ResolutionRateLimited:
		return "Rate limited"
	case ResolutionSkipped:
		return "Not validated"
	default:
		return "Invalid or unreachable"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// WriteSummary renders a terminal-friendly overview of a run.
func WriteSummary(w io.Writer, result *Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "References found: %d\n", len(result.References))
	fmt.Fprintf(&b, "In-text markers:  %d numbered, %d author-year\n",
		len(result.InText.Numbered), len(result.InText.AuthorYear))

	if len(result.References) > 0 {
		b.WriteString("Styles:\n")
		for _, row := range sortedStyleCounts(result.StyleCounts) {
			fmt.Fprintf(&b, "  %-8s %d\n", row.style, row.count)
		}

		resolved, rateLimited := 0, 0
		for _, ref := range result.References {
			switch ref.Validation.Resolution {
			case ResolutionResolved:
				resolved++
			case ResolutionRateLimited:
				rateLimited++
			}
		}
		fmt.Fprintf(&b, "Resolved: %d/%d", resolved, len(result.References))
		if rateLimited > 0 {
			fmt.Fprintf(&b, " (%d rate limited)", rateLimited)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Elapsed: %s\n", result.Elapsed.Round(time.Millisecond))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the analysis as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
