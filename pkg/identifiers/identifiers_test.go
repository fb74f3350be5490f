package identifiers

import (
	"strings"
	"testing"
)

func TestExtractDOI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare doi",
			input:    "10.1145/1188913.1188915",
			expected: "10.1145/1188913.1188915",
		},
		{
			name:     "doi prefix",
			input:    "doi:10.1145/1188913.1188915",
			expected: "10.1145/1188913.1188915",
		},
		{
			name:     "resolver url",
			input:    "https://doi.org/10.1038/s41586-021-03819-2",
			expected: "10.1038/s41586-021-03819-2",
		},
		{
			name:     "legacy resolver host",
			input:    "http://dx.doi.org/10.1000/182",
			expected: "10.1000/182",
		},
		{
			name:     "acm doi path",
			input:    "https://dl.acm.org/doi/abs/10.1145/3173574.3174214",
			expected: "10.1145/3173574.3174214",
		},
		{
			name:     "wrapped across lines",
			input:    "https://doi.org/10.1145/\n3173574.3174214",
			expected: "10.1145/3173574.3174214",
		},
		{
			name:     "uppercase suffix is lowered",
			input:    "doi:10.1002/ADMA.201304138",
			expected: "10.1002/adma.201304138",
		},
		{
			name:     "no doi",
			input:    "https://example.com/paper.pdf",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDOI(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractDOI(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractReferenceDOI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "doi colon form",
			input:    "Smith, J. (2020). A Study. doi:10.1145/1188913.1188915",
			expected: "10.1145/1188913.1188915",
		},
		{
			name:     "doi org link",
			input:    "Available at https://doi.org/10.1000/182.",
			expected: "10.1000/182",
		},
		{
			name:     "publisher url is ignored",
			input:    "See https://dl.acm.org/doi/10.1145/3173574.3174214",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Smith, J. (2020). A Study. Journal X, 5(2), 10-20.",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReferenceDOI(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractReferenceDOI(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalDOIURL(t *testing.T) {
	doi := "10.1145/1188913.1188915"

	if got := CanonicalDOIURL(doi, ""); got != "https://doi.org/"+doi {
		t.Errorf("default resolver = %q", got)
	}
	if got := CanonicalDOIURL(doi, "https://dl.acm.org/doi/pdf/"+doi); got != "https://dl.acm.org/doi/"+doi {
		t.Errorf("acm resolver = %q", got)
	}
}

func TestIsACMFormat(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://dl.acm.org/doi/10.1145/3173574.3174214", true},
		{"https://dl.acm.org/doi/abs/10.1145/3173574.3174214", true},
		{"https://dl.acm.org/doi/pdf/10.1145/3173574.3174214", true},
		{"https://dl.acm.org/citation.cfm?id=1188915", true},
		{"https://dl.acm.org/conference/chi", false},
		{"https://doi.org/10.1145/3173574.3174214", false},
	}

	for _, tt := range tests {
		if got := IsACMFormat(tt.url); got != tt.expected {
			t.Errorf("IsACMFormat(%q) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean",
			input:    "https://example.com/paper.pdf",
			expected: "https://example.com/paper.pdf",
		},
		{
			name:     "wrapped with whitespace",
			input:    "https://example.com/long/ path/to/paper.pdf",
			expected: "https://example.com/long/path/to/paper.pdf",
		},
		{
			name:     "bracket noise",
			input:    "[https://example.com/paper]",
			expected: "https://example.com/paper",
		},
		{
			name:     "trailing punctuation",
			input:    "https://example.com/paper.",
			expected: "https://example.com/paper",
		},
		{
			name:     "doi url is canonicalized",
			input:    "http://dx.doi.org/10.1145/1188913.1188915",
			expected: "https://doi.org/10.1145/1188913.1188915",
		},
		{
			name:     "acm doi keeps acm front end",
			input:    "https://dl.acm.org/doi/abs/10.1145/3173574.3174214.",
			expected: "https://dl.acm.org/doi/10.1145/3173574.3174214",
		},
		{
			name:     "www prefix",
			input:    "www.example.com/page",
			expected: "https://www.example.com/page",
		},
		{
			name:     "not a url",
			input:    "Smith, J. (2020)",
			expected: "",
		},
		{
			name:     "missing tld",
			input:    "https://localhost/page",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanURL(tt.input)
			if got != tt.expected {
				t.Errorf("CleanURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractURLs(t *testing.T) {
	ref := "Smith, J. (2020). A Study. https://example.com/a and https://example.com/b. Also https://example.com/a again."

	urls := ExtractURLs(ref)
	if len(urls) != 2 {
		t.Fatalf("expected 2 unique urls, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://example.com/a" || urls[1] != "https://example.com/b" {
		t.Errorf("unexpected urls: %v", urls)
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://dl.acm.org/doi/10.1145/1", "dl.acm.org"},
		{"https://DOI.ORG/10.1000/182", "doi.org"},
		{"https://example.com:8080/page", "example.com"},
		{"not a url at all ://", ""},
	}

	for _, tt := range tests {
		if got := Domain(tt.url); got != tt.expected {
			t.Errorf("Domain(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}

func TestScholarSearchURL(t *testing.T) {
	url := ScholarSearchURL("Smith, J. (2020). A Study.")
	if !strings.HasPrefix(url, "https://scholar.google.com/scholar?q=") {
		t.Errorf("unexpected prefix: %q", url)
	}
	if !strings.Contains(url, "Smith") {
		t.Errorf("query missing reference text: %q", url)
	}

	long := ScholarSearchURL(strings.Repeat("a", 500))
	if len(long) > len("https://scholar.google.com/scholar?q=")+200 {
		t.Errorf("query not capped: %d chars", len(long))
	}
}
