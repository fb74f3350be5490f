package citations

import (
	"regexp"
	"strings"
)

// refHeaders are the section heading words that announce a reference
// list, in the order they are probed.
var refHeaders = []string{
	"references", "bibliography", "works cited", "literature cited",
	"cited works", "sources", "reference list", "citations",
}

var (
	headerAlt  = strings.Join(refHeaders, "|")
	pageMarker = regexp.MustCompile(`(?i)^--- Page \d+ ---$`)

	// headerPatterns accept the heading with the numbering and paging
	// prefixes that survive PDF extraction: "7. References",
	// "VII. References", "Page 15 References", "19REFERENCES".
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^page\s+\d+\s+(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^(?:section\s+)?\d+\.?\s+(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^(?:section\s+)?[ivxlcdm]+\.?\s+(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^appendix\s+[a-z]\.?\s*:?\s*(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^\d+\s+(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^\d+(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^page\d*(?:` + headerAlt + `)(?:\s|$)`),
		regexp.MustCompile(`^(?:` + headerAlt + `)(?:\s+(?:and\s+)?(?:bibliography|citations|list|sources))?$`),
		regexp.MustCompile(`^(?:` + headerAlt + `)\s+and\s+(?:` + headerAlt + `)$`),
	}

	headerAtStartNumbered = regexp.MustCompile(`^\d+\s*(?:` + headerAlt + `)`)
	headerAtStartPaged    = regexp.MustCompile(`^page\s*\d*\s*(?:` + headerAlt + `)`)

	// sentenceIndicators mark a line as running prose; a heading word
	// buried in prose is not a section boundary.
	sentenceIndicators = []string{
		"the ", "this ", "these ", "those ", "for ", "see ", "in ", "of ",
		"to ", "with ", "from ", "and ", "or ", "but ", "however ",
		"therefore ", "according ", "based on",
	}

	// referenceSignals estimate whether a block of lines reads like a
	// reference list, for documents whose heading was lost.
	referenceSignals = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*\[\d+\]`),
		regexp.MustCompile(`(?im)^\s*\d+\.`),
		regexp.MustCompile(`(?im)^\s*\d+\s+[A-Z]`),
		regexp.MustCompile(`(?i)[A-Z][a-z]+,\s+[A-Z]\..*?\(\d{4}\)`),
		regexp.MustCompile(`(?i)et\s+al\.`),
		regexp.MustCompile(`(?i)doi:`),
		regexp.MustCompile(`(?i)https?://`),
		regexp.MustCompile(`\(\d{4}\)`),
		regexp.MustCompile(`(?i)vol\.\s*\d+|volume\s+\d+`),
		regexp.MustCompile(`(?i)pp?\.\s*\d+`),
	}

	leadingSeparators = regexp.MustCompile(`^[\s\-.:]+`)
)

// Split divides page-tagged document text into body text and the raw
// reference section. It first looks for an explicit heading; failing
// that, it probes the last pages (and then the last quarter of long
// documents) for reference-shaped content. When nothing is found the
// whole input is body and ReferencesRaw is empty.
func Split(text string) Section {
	if text == "" {
		return Section{}
	}
	lines := strings.Split(text, "\n")

	if sec, ok := splitAtHeader(lines); ok {
		return sec
	}
	if sec, ok := splitAtReferencePage(lines); ok {
		return sec
	}
	if sec, ok := splitLastQuarter(lines); ok {
		return sec
	}
	return Section{Body: text}
}

func splitAtHeader(lines []string) (Section, bool) {
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if !isReferenceHeader(stripped) {
			continue
		}
		afterPageBreak := i > 0 && pageMarker.MatchString(strings.TrimSpace(lines[i-1]))

		// The heading line itself may carry the first reference.
		var refLines []string
		if remainder := contentAfterHeader(stripped); remainder != "" {
			refLines = append(refLines, remainder)
		}

		nextPage := -1
		for j := i + 1; j < len(lines); j++ {
			if pageMarker.MatchString(strings.TrimSpace(lines[j])) {
				nextPage = j
				break
			}
		}

		var content []string
		if nextPage >= 0 {
			content = lines[i+1 : nextPage]
		} else {
			content = lines[i+1:]
		}
		refLines = append(refLines, trimBlankEdges(content)...)

		bodyEnd := i
		if afterPageBreak {
			bodyEnd = i - 1
		}
		var bodyLines []string
		bodyLines = append(bodyLines, lines[:bodyEnd]...)
		if nextPage >= 0 {
			bodyLines = append(bodyLines, lines[nextPage:]...)
		}

		return Section{
			Body:          strings.Join(bodyLines, "\n"),
			ReferencesRaw: strings.Join(refLines, "\n"),
		}, true
	}
	return Section{}, false
}

// splitAtReferencePage handles papers whose reference heading was eaten
// by extraction: the last pages are probed, newest first, for
// reference-shaped content.
func splitAtReferencePage(lines []string) (Section, bool) {
	var pageStarts []int
	for i, line := range lines {
		if pageMarker.MatchString(strings.TrimSpace(line)) {
			pageStarts = append(pageStarts, i)
		}
	}

	probe := pageStarts
	if len(probe) > 3 {
		probe = probe[len(probe)-3:]
	}
	for k := len(probe) - 1; k >= 0; k-- {
		pageStart := probe[k]
		nextPage := -1
		for _, start := range pageStarts {
			if start > pageStart {
				nextPage = start
				break
			}
		}

		var pageLines []string
		if nextPage >= 0 {
			pageLines = lines[pageStart+1 : nextPage]
		} else {
			pageLines = lines[pageStart+1:]
		}
		if len(pageLines) < 5 {
			continue
		}
		if !looksLikeReferences(pageLines) {
			continue
		}

		var bodyLines []string
		bodyLines = append(bodyLines, lines[:pageStart]...)
		if nextPage >= 0 {
			bodyLines = append(bodyLines, lines[nextPage:]...)
		}
		return Section{
			Body:          strings.Join(bodyLines, "\n"),
			ReferencesRaw: strings.Join(pageLines, "\n"),
		}, true
	}
	return Section{}, false
}

func splitLastQuarter(lines []string) (Section, bool) {
	if len(lines) <= 50 {
		return Section{}, false
	}
	split := len(lines) - len(lines)/4
	lastQuarter := lines[split:]
	if !looksLikeReferences(lastQuarter) {
		return Section{}, false
	}
	return Section{
		Body:          strings.Join(lines[:split], "\n"),
		ReferencesRaw: strings.Join(lastQuarter, "\n"),
	}, true
}

func isReferenceHeader(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return false
	}

	headerAtStart := false
	for _, header := range refHeaders {
		if strings.HasPrefix(lower, header) {
			headerAtStart = true
			break
		}
	}
	if !headerAtStart && (headerAtStartNumbered.MatchString(lower) || headerAtStartPaged.MatchString(lower)) {
		headerAtStart = true
	}

	// A heading buried late in a long line, or inside prose, is body
	// text that merely mentions references.
	if !headerAtStart {
		if len(lower) > 100 {
			return false
		}
		for _, indicator := range sentenceIndicators {
			if strings.Contains(lower, indicator) {
				return false
			}
		}
	}

	for _, re := range headerPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// contentAfterHeader returns what follows the heading word on its own
// line, with separator punctuation stripped.
func contentAfterHeader(line string) string {
	lower := strings.ToLower(line)
	for _, header := range refHeaders {
		pos := strings.Index(lower, header)
		if pos < 0 {
			continue
		}
		remainder := strings.TrimSpace(line[pos+len(header):])
		return leadingSeparators.ReplaceAllString(remainder, "")
	}
	return ""
}

func looksLikeReferences(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	sample := lines
	if len(sample) > 10 {
		sample = sample[:10]
	}
	text := strings.Join(sample, "\n")

	hits := 0
	for _, re := range referenceSignals {
		hits += len(re.FindAllString(text, -1))
	}
	return hits >= 3
}

func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
