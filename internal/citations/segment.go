package citations

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// refStartPatterns recognize the line shapes that open a new
	// reference entry across numbering conventions.
	refStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*\[\d+\]`),
		regexp.MustCompile(`^\s*\d+\.`),
		regexp.MustCompile(`^\s*\d+\s+[A-Z]`),
		regexp.MustCompile(`^\s*[A-Z][a-z]+,\s+[A-Z]\.?\s*(?:[A-Z]\.?\s*)?(?:,?\s*(?:and|&)\s+[A-Z][a-z]+,\s+[A-Z]\.?\s*(?:[A-Z]\.?\s*)?)*(?:,?\s*et\s+al\.)?`),
		regexp.MustCompile(`^\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\s+et\s+al\.`),
		regexp.MustCompile(`^\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+\(\d{4}\)`),
	}

	// orgStartPatterns catch entries opened by an organization name
	// rather than "Surname, I." author lists.
	orgStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z][a-zA-Z\s]+\.?\s*\([12]\d{3}`),
		regexp.MustCompile(`^[A-Z][a-zA-Z\s]+:\s*`),
		regexp.MustCompile(`^[A-Z][a-zA-Z\s]{10,}\.?\s*\(`),
	}

	// refIndicators: a filtered entry must show at least one of these
	// to count as a reference rather than stray layout text.
	refIndicators = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}`),
		regexp.MustCompile(`[A-Z][a-z]+,`),
		regexp.MustCompile(`\..*\.`),
		regexp.MustCompile(`(?i)http`),
		regexp.MustCompile(`(?i)doi`),
		regexp.MustCompile(`(?i)vol\.?|volume`),
		regexp.MustCompile(`(?i)pp?\.?`),
		regexp.MustCompile(`(?i)journal|proceedings|conference`),
	}

	// skipPhrases are placeholder texts that sometimes occupy an
	// otherwise empty reference section.
	skipPhrases = []string{
		"no references available",
		"no citations found",
		"references not available",
		"none available",
		"not applicable",
		"n/a",
		"tbd",
		"to be determined",
		"coming soon",
		"under construction",
	}

	minReferenceLength = 20
)

// Segment cuts a raw reference section into individual entries.
// Wrapped lines are folded into their entry with single spaces, blank
// lines act as soft separators, and implausibly short or indicator-free
// segments are dropped. Entries keep their order of appearance.
func Segment(referencesRaw string) []RawReference {
	if referencesRaw == "" {
		return nil
	}

	var segments []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			segments = append(segments, strings.TrimSpace(strings.Join(current, " ")))
			current = nil
		}
	}

	previous := ""
	for _, line := range strings.Split(referencesRaw, "\n") {
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			flush()
			previous = line
			continue
		}

		if opensReference(stripped, previous) {
			flush()
		}
		current = append(current, stripped)
		previous = line
	}
	flush()

	var refs []RawReference
	for _, seg := range segments {
		if !keepSegment(seg) {
			continue
		}
		refs = append(refs, RawReference{Text: seg, OrderIndex: len(refs)})
	}
	return refs
}

func isReferenceStart(line string) bool {
	if line == "" {
		return false
	}
	for _, re := range refStartPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// opensReference decides whether a non-blank line starts a new entry or
// continues the current one.
func opensReference(line, previous string) bool {
	if isReferenceStart(line) {
		return true
	}
	for _, re := range orgStartPatterns {
		if re.MatchString(line) {
			return true
		}
	}

	// A finished previous line (URL path or sentence period) followed
	// by a fresh capitalized line of real length reads as a new entry.
	prev := strings.TrimSpace(previous)
	if prev != "" && (strings.HasSuffix(prev, "/") || strings.HasSuffix(prev, ".")) {
		runes := []rune(line)
		if len(line) > 10 && unicode.IsUpper(runes[0]) {
			return true
		}
	}
	return false
}

func keepSegment(seg string) bool {
	lower := strings.ToLower(strings.TrimSpace(seg))
	for _, phrase := range skipPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	if len(seg) <= minReferenceLength {
		return false
	}
	if !strings.Contains(seg, " ") && !strings.Contains(seg, ",") {
		return false
	}
	for _, re := range refIndicators {
		if re.MatchString(seg) {
			return true
		}
	}
	return false
}
