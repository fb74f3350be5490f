package citations

import (
	"regexp"
	"strings"
)

var (
	numberedMarker   = regexp.MustCompile(`\[(\d+)\]`)
	authorYearMarker = regexp.MustCompile(`\(([A-Z][A-Za-z]+, \d{4}(?:; [A-Z][A-Za-z]+, \d{4})*)\)`)
	sentenceEnd      = regexp.MustCompile(`[.!?]\s+`)
)

// ScanInText collects the citation markers present in body text.
func ScanInText(body string) InTextCitations {
	var cits InTextCitations
	for _, m := range numberedMarker.FindAllStringSubmatch(body, -1) {
		cits.Numbered = append(cits.Numbered, m[1])
	}
	for _, m := range authorYearMarker.FindAllStringSubmatch(body, -1) {
		cits.AuthorYear = append(cits.AuthorYear, m[1])
	}
	return cits
}

// ScanCitationSentences returns the body sentences that carry at least
// one citation marker, with the markers they contain.
func ScanCitationSentences(body string) []CitationSentence {
	var out []CitationSentence
	for _, sent := range splitSentences(body) {
		var found []string
		found = append(found, numberedMarker.FindAllString(sent, -1)...)
		found = append(found, authorYearMarker.FindAllString(sent, -1)...)
		if len(found) > 0 {
			out = append(out, CitationSentence{
				Sentence:  strings.TrimSpace(sent),
				Citations: found,
			})
		}
	}
	return out
}

// splitSentences cuts text at sentence-final punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		// loc[0]+1 is just past the punctuation character.
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
