// Package identifiers normalizes the persistent identifiers found in
// bibliographic reference strings: DOIs, resolver URLs, and plain web links.
package identifiers

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// doiCore is the registrant/suffix grammar shared by every DOI form.
	doiCore = regexp.MustCompile(`10\.\d{4,}/[-._;()/:A-Za-z0-9]+`)

	// doiForms are tried in order against a whitespace-stripped string.
	// Later forms catch DOIs buried inside publisher URL paths.
	doiForms = []*regexp.Regexp{
		regexp.MustCompile(`(?i)doi\.org/(10\.\d{4,}/[-._;()/:A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)dx\.doi\.org/(10\.\d{4,}/[-._;()/:A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)doi/(?:abs/|pdf/|full/|book/|citation/)?(10\.\d{4,}/[-._;()/:A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)(?:^|[^/\w])(10\.\d{4,}/[-._;()/:A-Za-z0-9]+)`),
	}

	// doiInReference matches the explicit DOI statements that appear in
	// reference text, as opposed to DOIs embedded in arbitrary URLs.
	doiInReference = regexp.MustCompile(`(?i)(?:doi:?\s*|https?://(?:dx\.)?doi\.org/)(10\.\d{4,}/[^\s,]+)`)

	urlSimple = regexp.MustCompile(`https?://[^\s<>"']+`)

	acmDOIURL      = regexp.MustCompile(`dl\.acm\.org/doi/(?:abs/|pdf/|full/)?10\.\d{4,}/[\d.]+`)
	acmCitationURL = regexp.MustCompile(`dl\.acm\.org/citation\.cfm\?id=\d+`)

	wellFormedURL = regexp.MustCompile(`^https?://[^\s/]+\.[^\s/]+/?.*$`)

	whitespace    = regexp.MustCompile(`\s+`)
	trailingPunct = regexp.MustCompile(`[.,;:)\]}]+$`)
	bracketNoise  = regexp.MustCompile(`["'\[\]<>{}]`)
	quoteNoise    = regexp.MustCompile(`["'<>{}]`)
)

// ExtractDOI pulls a DOI out of arbitrary text, typically a URL or a
// reference fragment. Whitespace is stripped first so that DOIs broken
// across line wraps still match. The result is lower-cased; DOI names are
// case-insensitive and the lower-case form is the canonical one.
func ExtractDOI(text string) string {
	if text == "" {
		return ""
	}
	compact := whitespace.ReplaceAllString(text, "")
	for _, form := range doiForms {
		m := form.FindStringSubmatch(compact)
		if m == nil {
			continue
		}
		doi := m[len(m)-1]
		if i := strings.Index(doi, "10."); i > 0 {
			doi = doi[i:]
		}
		doi = trailingPunct.ReplaceAllString(doi, "")
		if doiCore.MatchString(doi) {
			return strings.ToLower(doi)
		}
	}
	return ""
}

// ExtractReferenceDOI finds an explicitly declared DOI in a reference
// string ("doi:10.x/y", "DOI 10.x/y", or a doi.org link). It does not dig
// DOIs out of publisher URLs; use ExtractDOI for that.
func ExtractReferenceDOI(reference string) string {
	m := doiInReference.FindStringSubmatch(reference)
	if m == nil {
		return ""
	}
	doi := trailingPunct.ReplaceAllString(m[1], "")
	return strings.ToLower(doi)
}

// CanonicalDOIURL maps a DOI to its canonical resolver URL. DOIs that were
// lifted from a dl.acm.org link keep the ACM front end, which serves richer
// landing pages than the generic resolver.
func CanonicalDOIURL(doi, sourceURL string) string {
	if strings.Contains(strings.ToLower(sourceURL), "dl.acm.org") {
		return "https://dl.acm.org/doi/" + doi
	}
	return "https://doi.org/" + doi
}

// IsACMFormat reports whether a URL structurally matches one of the two
// dl.acm.org permalink shapes (modern DOI path or legacy citation.cfm).
// Such URLs identify a publication without needing a network round trip.
func IsACMFormat(rawURL string) bool {
	return acmDOIURL.MatchString(rawURL) || acmCitationURL.MatchString(rawURL)
}

// CleanURL repairs a URL that was mangled by PDF text extraction: line
// wraps inject whitespace, surrounding prose contributes brackets and
// quotes, and reserved characters arrive unencoded. It returns the empty
// string when no plausible URL can be recovered.
func CleanURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.Trim(u, `"'<>[](){}`)
	if u == "" {
		return ""
	}

	// Rejoin fragments split by line wrapping, shedding the punctuation
	// that tends to cling to each piece.
	if parts := strings.Fields(u); len(parts) > 1 {
		var cleaned []string
		for _, p := range parts {
			p = bracketNoise.ReplaceAllString(p, "")
			p = strings.Trim(p, ".,;:()[]{}")
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		u = strings.Join(cleaned, "")
	}
	u = whitespace.ReplaceAllString(u, "")
	u = strings.ReplaceAll(u, `\`, "/")

	// A DOI hiding in the URL wins: rewrite to the canonical resolver
	// instead of trusting a possibly-truncated publisher path.
	if strings.Contains(strings.ToLower(u), "doi") {
		if doi := ExtractDOI(u); doi != "" {
			return CanonicalDOIURL(doi, u)
		}
	}

	u = trailingPunct.ReplaceAllString(u, "")

	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		if strings.HasPrefix(u, "www.") {
			u = "https://" + u
		} else {
			return ""
		}
	}

	u = encodeComponents(u)
	if u == "" || !wellFormedURL.MatchString(u) {
		return ""
	}
	return u
}

// encodeComponents re-encodes the path, query, and fragment of a parsed
// URL so that reserved characters picked up from surrounding text do not
// break the request line.
func encodeComponents(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}

	var path strings.Builder
	for _, seg := range strings.Split(parsed.EscapedPath(), "/") {
		if seg == "" {
			continue
		}
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			decoded = seg
		}
		decoded = quoteNoise.ReplaceAllString(decoded, "")
		if decoded == "" {
			continue
		}
		path.WriteByte('/')
		path.WriteString(url.PathEscape(decoded))
	}

	out := parsed.Scheme + "://" + strings.ToLower(parsed.Host) + path.String()
	if parsed.RawQuery != "" {
		out += "?" + encodeQuery(parsed.RawQuery)
	}
	if parsed.Fragment != "" {
		out += "#" + url.QueryEscape(parsed.Fragment)
	}
	return out
}

func encodeQuery(rawQuery string) string {
	var pairs []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		if !found {
			pairs = append(pairs, url.QueryEscape(k))
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", url.QueryEscape(k), url.QueryEscape(v)))
	}
	return strings.Join(pairs, "&")
}

// ExtractURLs finds and cleans every URL in a reference string, in order
// of appearance, with duplicates removed.
func ExtractURLs(reference string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, cand := range urlSimple.FindAllString(reference, -1) {
		cleaned := CleanURL(cand)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		out = append(out, cleaned)
	}
	return out
}

// Domain extracts the lower-cased host of a URL, without port. It is the
// bucketing key for per-domain rate limiting.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// ScholarSearchURL builds a Google Scholar query for a reference so that
// unresolvable citations can still be chased by hand. The query is capped
// to keep it inside sane URL length limits.
func ScholarSearchURL(reference string) string {
	q := strings.TrimSpace(reference)
	if len(q) > 200 {
		q = q[:200]
	}
	return "https://scholar.google.com/scholar?q=" + url.QueryEscape(q)
}
