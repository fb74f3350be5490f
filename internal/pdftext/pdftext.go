// Package pdftext extracts page-tagged plain text from PDF files. The
// page markers it emits are what the section splitter keys on.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageMarker formats the delimiter line written before each page.
func PageMarker(page int) string {
	return fmt.Sprintf("--- Page %d ---", page)
}

// ExtractPages reads a PDF and returns its text with a marker line
// before each page. Pages that fail to decode are kept as a placeholder
// line so page numbering stays intact.
func ExtractPages(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		b.WriteString(PageMarker(i))
		b.WriteString("\n")

		page := r.Page(i)
		if page.V.IsNull() {
			fmt.Fprintf(&b, "[Error extracting text from page %d]\n", i)
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			fmt.Fprintf(&b, "[Error extracting text from page %d]\n", i)
			continue
		}
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
