package styles

import (
	"regexp"
	"strings"

	"github.com/janetyc/citecheck/pkg/identifiers"
)

// Components are the structured fields recoverable from a reference
// string. Fields the extractor cannot find stay empty; extraction is
// best-effort and never fails.
type Components struct {
	Authors   string `json:"authors,omitempty"`
	Year      string `json:"year,omitempty"`
	Title     string `json:"title,omitempty"`
	Source    string `json:"source,omitempty"`
	Volume    string `json:"volume,omitempty"`
	Issue     string `json:"issue,omitempty"`
	Pages     string `json:"pages,omitempty"`
	DOI       string `json:"doi,omitempty"`
	URL       string `json:"url,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Location  string `json:"location,omitempty"`
}

var (
	compURL = regexp.MustCompile(`https?://[^\s<>"']+`)

	apaAuthors = regexp.MustCompile(`^([^(]+)\s*\(\d{4}\)`)
	apaYear    = regexp.MustCompile(`\((\d{4})\)`)
	apaTitle   = regexp.MustCompile(`\(\d{4}\)\.\s*([^.]+)\.`)

	ieeeAuthors = regexp.MustCompile(`^\[\d+\]\s*([^,"]+),\s*"`)
	quotedTitle = regexp.MustCompile(`"([^"]+)"`)
	tailYear    = regexp.MustCompile(`,\s*(\d{4})(?:\.|,|$)`)

	mlaAuthors     = regexp.MustCompile(`^([^.]+)\.`)
	mlaQuotedTitle = regexp.MustCompile(`[.]\s*"([^"]+)"`)
	mlaPlainTitle  = regexp.MustCompile(`[.]\s*([^.]+)\.`)

	acmAuthorYear = regexp.MustCompile(`^(?:\[\d+\]\s*)?([^.]+\.)?\s*(\d{4})\.`)
	acmTitleEnds  = []*regexp.Regexp{
		regexp.MustCompile(`([^.]+)\.\s*(?:In\s+Proceedings|In\s+ACM|Commun\.|J\.|Trans\.)`),
		regexp.MustCompile(`([^.]+)\.\s*\(`),
		regexp.MustCompile(`([^.]+)\.\s*[A-Z][a-z]+(?:,\s*[A-Z][a-z]+)*(?:\.|,)`),
		regexp.MustCompile(`([^.]+)\.`),
	}
	acmProceedings = regexp.MustCompile(`In Proceedings of ([^(]+)\s*\(([^)]+)\)`)
	acmJournal     = regexp.MustCompile(`([A-Z][^,]+)\s+(\d+),\s*(\d+)\s*\(([^)]+)\),\s*([\d\x{2013}-]+)`)
	acmPublisher   = regexp.MustCompile(`([A-Z][^,]+),\s+([A-Z][^,.]+(?:,\s*[A-Z]{2})?)(?:\.|$)`)

	anyVolume = regexp.MustCompile(`(?i)(?:vol\.|volume)\s*(\d+)`)
	anyIssue  = regexp.MustCompile(`(?i)(?:no\.|issue)\s*(\d+)|\((\d+)\)`)
	anyPages  = regexp.MustCompile(`(?:pp?\.|pages?)\s*(\d+[-\x{2013}]\d+)|(\d+[-\x{2013}]\d+)(?:\.|,|$)`)
)

// Extract pulls structured components from a reference using the
// conventions of the given style. Unknown styles still get the
// style-independent fields (DOI, URL, volume, issue, pages).
func Extract(reference, style string) Components {
	var c Components

	c.DOI = identifiers.ExtractReferenceDOI(reference)
	if m := compURL.FindString(reference); m != "" {
		c.URL = m
	}

	switch style {
	case "APA":
		extractAPA(reference, &c)
	case "IEEE":
		extractIEEE(reference, &c)
	case "MLA":
		extractMLA(reference, &c)
	case "ACM":
		extractACM(reference, &c)
	}

	if c.Volume == "" {
		if m := anyVolume.FindStringSubmatch(reference); m != nil {
			c.Volume = m[1]
		}
	}
	if c.Issue == "" {
		if m := anyIssue.FindStringSubmatch(reference); m != nil {
			c.Issue = firstNonEmpty(m[1:])
		}
	}
	if c.Pages == "" {
		if m := anyPages.FindStringSubmatch(reference); m != nil {
			c.Pages = firstNonEmpty(m[1:])
		}
	}
	return c
}

func extractAPA(reference string, c *Components) {
	if m := apaAuthors.FindStringSubmatch(reference); m != nil {
		c.Authors = strings.TrimSpace(m[1])
	}
	if m := apaYear.FindStringSubmatch(reference); m != nil {
		c.Year = m[1]
	}
	if m := apaTitle.FindStringSubmatch(reference); m != nil {
		c.Title = strings.TrimSpace(m[1])
	}
}

func extractIEEE(reference string, c *Components) {
	if m := ieeeAuthors.FindStringSubmatch(reference); m != nil {
		c.Authors = strings.TrimSpace(m[1])
	}
	if m := quotedTitle.FindStringSubmatch(reference); m != nil {
		c.Title = strings.TrimSpace(m[1])
	}
	if m := tailYear.FindStringSubmatch(reference); m != nil {
		c.Year = m[1]
	}
}

func extractMLA(reference string, c *Components) {
	if m := mlaAuthors.FindStringSubmatch(reference); m != nil {
		c.Authors = strings.TrimSpace(m[1])
	}
	if m := mlaQuotedTitle.FindStringSubmatch(reference); m != nil {
		c.Title = strings.TrimSpace(m[1])
	} else if m := mlaPlainTitle.FindStringSubmatch(reference); m != nil {
		c.Title = strings.TrimSpace(m[1])
	}
	if m := tailYear.FindStringSubmatch(reference); m != nil {
		c.Year = m[1]
	}
}

func extractACM(reference string, c *Components) {
	// ACM leads with "Authors. Year." and puts the title right after.
	if loc := acmAuthorYear.FindStringSubmatchIndex(reference); loc != nil {
		if loc[2] >= 0 {
			c.Authors = strings.TrimSpace(strings.Trim(reference[loc[2]:loc[3]], "."))
		}
		c.Year = reference[loc[4]:loc[5]]

		rest := reference[loc[1]:]
		for _, re := range acmTitleEnds {
			if m := re.FindStringSubmatch(rest); m != nil {
				c.Title = strings.TrimSpace(m[1])
				break
			}
		}
	}

	if strings.Contains(reference, "In Proceedings of") {
		if m := acmProceedings.FindStringSubmatch(reference); m != nil {
			c.Source = strings.TrimSpace(m[1])
		}
	} else if m := acmJournal.FindStringSubmatch(reference); m != nil {
		c.Source = strings.TrimSpace(m[1])
		c.Volume = m[2]
		c.Issue = m[3]
		c.Pages = m[5]
	}

	if loc := acmPublisher.FindStringSubmatchIndex(reference); loc != nil {
		if !strings.Contains(reference[:loc[0]], "In Proceedings") {
			c.Publisher = strings.TrimSpace(reference[loc[2]:loc[3]])
			c.Location = strings.TrimSpace(reference[loc[4]:loc[5]])
		}
	}
}

func firstNonEmpty(groups []string) string {
	for _, g := range groups {
		if g != "" {
			return g
		}
	}
	return ""
}

// FormatIssues reports which essential components a reference is missing
// for its detected style. An empty slice means the reference carries at
// least authors, a year, and a title.
func FormatIssues(reference, style string) []string {
	if style == UnknownStyle {
		return nil
	}
	c := Extract(reference, style)

	var issues []string
	if c.Authors == "" {
		issues = append(issues, "missing author information")
	}
	if c.Year == "" {
		issues = append(issues, "missing publication year")
	}
	if c.Title == "" {
		issues = append(issues, "missing title")
	}
	return issues
}
