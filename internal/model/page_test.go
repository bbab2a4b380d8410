package model

import "testing"

// TestDeriveTitle tests title derivation from page URLs.
func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"root without slash", "https://example.com", "Homepage"},
		{"root with slash", "https://example.com/", "Homepage"},
		{"simple segment", "https://example.com/about", "About"},
		{"hyphenated segment", "https://example.com/about-us", "About Us"},
		{"underscored segment", "https://example.com/our_team", "Our Team"},
		{"nested path", "https://example.com/company/leadership-team", "Leadership Team"},
		{"extension stripped", "https://example.com/annual-report.pdf", "Annual Report"},
		{"trailing slash", "https://example.com/contact/", "Contact"},
		{"mixed separators", "https://example.com/case_studies-2024", "Case Studies 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DeriveTitle(tt.url); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestCategorizeURL tests first-match-wins category assignment.
func TestCategorizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want Category
	}{
		{"root is homepage", "https://example.com/", CategoryHomepage},
		{"root without slash is homepage", "https://example.com", CategoryHomepage},
		{"about page", "https://example.com/about-us", CategoryAbout},
		{"company page", "https://example.com/company", CategoryAbout},
		{"services page", "https://example.com/services/consulting", CategoryServices},
		{"product page", "https://example.com/products", CategoryServices},
		{"contact page", "https://example.com/contact", CategoryContact},
		{"careers page", "https://example.com/careers", CategoryCareers},
		{"jobs page", "https://example.com/jobs/open-roles", CategoryCareers},
		{"blog post", "https://example.com/blog/launch", CategoryNews},
		{"team page", "https://example.com/team", CategoryTeam},
		{"portfolio page", "https://example.com/portfolio", CategoryPortfolio},
		{"case study", "https://example.com/case-studies/acme", CategoryPortfolio},
		{"support page", "https://example.com/support", CategorySupport},
		{"unmatched path", "https://example.com/terms", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CategorizeURL(tt.url); got != tt.want {
				t.Errorf("CategorizeURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestCategorizeURLFirstMatchWins verifies rule ordering is honored when a
// path matches multiple rules.
func TestCategorizeURLFirstMatchWins(t *testing.T) {
	t.Parallel()

	// "about" (About rule) appears before "team" (Team rule) in the table,
	// so a path containing both categorizes as About.
	if got := CategorizeURL("https://example.com/about-the-team"); got != CategoryAbout {
		t.Errorf("expected About for path matching both rules, got %q", got)
	}
}

// TestPageRecordIsRoot tests root path detection.
func TestPageRecordIsRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"https://example.com/", true},
		{"https://example.com/about", false},
		{"https://example.com/?utm=1", true},
	}

	for _, tt := range tests {
		p := PageRecord{URL: tt.url}
		if got := p.IsRoot(); got != tt.want {
			t.Errorf("IsRoot(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
