package styles

import "testing"

func TestExtractAPA(t *testing.T) {
	ref := "Smith, J. (2020). A study of things. Journal of Testing, 5(2), 10-20."
	c := Extract(ref, "APA")

	if c.Authors != "Smith, J." {
		t.Errorf("authors = %q", c.Authors)
	}
	if c.Year != "2020" {
		t.Errorf("year = %q", c.Year)
	}
	if c.Title != "A study of things" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Pages != "10-20" {
		t.Errorf("pages = %q", c.Pages)
	}
}

func TestExtractNumberedAPAKeepsYearAndPages(t *testing.T) {
	c := Extract("[1] Smith, J. (2020). A Study. Journal X, 5(2), 10-20.", "APA")

	if c.Year != "2020" {
		t.Errorf("year = %q, want 2020", c.Year)
	}
	if c.Pages != "10-20" {
		t.Errorf("pages = %q, want 10-20", c.Pages)
	}
}

func TestExtractIEEE(t *testing.T) {
	ref := `[3] J. Smith and K. Jones, "A study of things," in Proc. Int. Conf. on Testing, 2020.`
	c := Extract(ref, "IEEE")

	if c.Authors != "J. Smith and K. Jones" {
		t.Errorf("authors = %q", c.Authors)
	}
	if c.Title != "A study of things," {
		t.Errorf("title = %q", c.Title)
	}
	if c.Year != "2020" {
		t.Errorf("year = %q", c.Year)
	}
}

func TestExtractMLA(t *testing.T) {
	ref := `Smith, John. "A Study of Things." Journal of Testing, vol. 5, no. 2, 2020, pp. 10-20.`
	c := Extract(ref, "MLA")

	if c.Authors != "Smith, John" {
		t.Errorf("authors = %q", c.Authors)
	}
	if c.Title != "A Study of Things." {
		t.Errorf("title = %q", c.Title)
	}
	if c.Year != "2020" {
		t.Errorf("year = %q", c.Year)
	}
	if c.Volume != "5" {
		t.Errorf("volume = %q", c.Volume)
	}
}

func TestExtractACMProceedings(t *testing.T) {
	ref := "[1] John Smith and Kate Jones. 2020. A Study of Things. In Proceedings of the Conference on Testing (TEST '20). ACM, New York, NY, 1-10."
	c := Extract(ref, "ACM")

	if c.Authors != "John Smith and Kate Jones" {
		t.Errorf("authors = %q", c.Authors)
	}
	if c.Year != "2020" {
		t.Errorf("year = %q", c.Year)
	}
	if c.Title != "A Study of Things" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Source != "the Conference on Testing" {
		t.Errorf("source = %q", c.Source)
	}
}

func TestExtractACMJournal(t *testing.T) {
	ref := "John Smith. 2019. Another Study. Commun. ACM 62, 4 (April 2019), 55-63."
	c := Extract(ref, "ACM")

	if c.Year != "2019" {
		t.Errorf("year = %q", c.Year)
	}
	if c.Volume != "62" {
		t.Errorf("volume = %q", c.Volume)
	}
	if c.Issue != "4" {
		t.Errorf("issue = %q", c.Issue)
	}
	if c.Pages != "55-63" {
		t.Errorf("pages = %q", c.Pages)
	}
}

func TestExtractIdentifiers(t *testing.T) {
	ref := "Smith, J. (2020). A study. doi:10.1145/1188913.1188915. Available: https://example.com/paper"
	c := Extract(ref, "APA")

	if c.DOI != "10.1145/1188913.1188915" {
		t.Errorf("doi = %q", c.DOI)
	}
	if c.URL != "https://example.com/paper" {
		t.Errorf("url = %q", c.URL)
	}
}

func TestExtractUnknownStyleStillFindsCommonFields(t *testing.T) {
	ref := "Some report, vol. 7, pp. 101-110, https://example.com/report"
	c := Extract(ref, UnknownStyle)

	if c.Volume != "7" {
		t.Errorf("volume = %q", c.Volume)
	}
	if c.Pages != "101-110" {
		t.Errorf("pages = %q", c.Pages)
	}
	if c.URL != "https://example.com/report" {
		t.Errorf("url = %q", c.URL)
	}
}

func TestFormatIssues(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		style     string
		count     int
	}{
		{
			name:      "complete apa",
			reference: "Smith, J. (2020). A study of things. Journal of Testing, 5(2), 10-20.",
			style:     "APA",
			count:     0,
		},
		{
			name:      "missing everything",
			reference: "an unstructured note about a paper",
			style:     "APA",
			count:     3,
		},
		{
			name:      "unknown style is not judged",
			reference: "an unstructured note about a paper",
			style:     UnknownStyle,
			count:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := FormatIssues(tt.reference, tt.style)
			if len(issues) != tt.count {
				t.Errorf("got %d issues %v, want %d", len(issues), issues, tt.count)
			}
		})
	}
}
