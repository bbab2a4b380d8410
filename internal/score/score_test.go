package score

import (
	"testing"
	"time"

	"github.com/brightlist/sitescout/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func scoreSingle(t *testing.T, p model.PageRecord, company string) float64 {
	t.Helper()
	pages := []model.PageRecord{p}
	New(WithClock(fixedNow)).Score(pages, company)
	return pages[0].RelevanceScore
}

func floatPtr(f float64) *float64 { return &f }

// TestScoreComponents tests the individual scoring signals.
func TestScoreComponents(t *testing.T) {
	t.Parallel()

	t.Run("default base without priority", func(t *testing.T) {
		t.Parallel()

		got := scoreSingle(t, model.PageRecord{URL: "https://example.com/xyz", Title: "Xyz"}, "Nameless")
		if got != 5.0 {
			t.Errorf("score = %v, want 5.0", got)
		}
	})

	t.Run("declared priority scales base", func(t *testing.T) {
		t.Parallel()

		got := scoreSingle(t, model.PageRecord{
			URL:              "https://example.com/xyz",
			Title:            "Xyz",
			DeclaredPriority: floatPtr(0.8),
		}, "Nameless")
		if got != 8.0 {
			t.Errorf("score = %v, want 8.0", got)
		}
	})

	t.Run("homepage gets the largest boost", func(t *testing.T) {
		t.Parallel()

		home := scoreSingle(t, model.PageRecord{URL: "https://example.com/", Title: "Homepage"}, "Nameless")
		about := scoreSingle(t, model.PageRecord{URL: "https://example.com/about", Title: "About"}, "Nameless")
		if home <= about {
			t.Errorf("homepage %v should outrank about %v at equal base", home, about)
		}
		if home != 25.0 {
			t.Errorf("homepage score = %v, want 25.0", home)
		}
	})

	t.Run("path boosts and penalties", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			url  string
			want float64
		}{
			{"about boost", "https://example.com/about-us", 20.0},
			{"services boost", "https://example.com/services", 17.0},
			{"contact boost", "https://example.com/contact", 15.0},
			{"careers boost", "https://example.com/careers", 13.0},
			{"news boost", "https://example.com/news", 11.0},
			{"legal penalty", "https://example.com/privacy-policy", 0.0},
			{"admin floors at zero", "https://example.com/admin/login", 0.0},
			{"archive penalty", "https://example.com/tag/widgets", 0.0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got := scoreSingle(t, model.PageRecord{URL: tt.url, Title: "X"}, "Nameless")
				if got != tt.want {
					t.Errorf("score(%s) = %v, want %v", tt.url, got, tt.want)
				}
			})
		}
	})

	t.Run("document extension penalty", func(t *testing.T) {
		t.Parallel()

		page := scoreSingle(t, model.PageRecord{URL: "https://example.com/whitepaper.pdf", Title: "Whitepaper"}, "Nameless")
		if page != 0.0 {
			t.Errorf("pdf score = %v, want 0.0 (5 - 5)", page)
		}
	})

	t.Run("name tokens reward URL and title independently", func(t *testing.T) {
		t.Parallel()

		// "acme" in both URL and title: 5 + 5 + 3 = 13.
		got := scoreSingle(t, model.PageRecord{
			URL:   "https://acme.com/acme-history",
			Title: "Acme History",
		}, "Acme Widgets")
		if got != 13.0 {
			t.Errorf("score = %v, want 13.0", got)
		}
	})

	t.Run("short tokens are ignored", func(t *testing.T) {
		t.Parallel()

		// "co" is too short to count even though it appears everywhere.
		got := scoreSingle(t, model.PageRecord{URL: "https://co.com/co", Title: "Co"}, "Co")
		if got != 5.0 {
			t.Errorf("score = %v, want 5.0", got)
		}
	})

	t.Run("recency windows", func(t *testing.T) {
		t.Parallel()

		mod := func(daysAgo int) *time.Time {
			ts := fixedNow().Add(-time.Duration(daysAgo) * 24 * time.Hour)
			return &ts
		}

		tests := []struct {
			name    string
			daysAgo int
			want    float64
		}{
			{"fresh", 10, 8.0},
			{"warm", 60, 6.0},
			{"between windows", 200, 5.0},
			{"stale", 400, 3.0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got := scoreSingle(t, model.PageRecord{
					URL:          "https://example.com/xyz",
					Title:        "Xyz",
					LastModified: mod(tt.daysAgo),
				}, "Nameless")
				if got != tt.want {
					t.Errorf("score = %v, want %v", got, tt.want)
				}
			})
		}
	})
}

// TestScoreMonotonicity verifies a name-token match never lowers a score.
func TestScoreMonotonicity(t *testing.T) {
	t.Parallel()

	without := scoreSingle(t, model.PageRecord{URL: "https://example.com/widgets", Title: "Widgets"}, "Acme Corp")
	with := scoreSingle(t, model.PageRecord{URL: "https://example.com/acme-widgets", Title: "Widgets"}, "Acme Corp")

	if with < without {
		t.Errorf("token match lowered score: %v < %v", with, without)
	}
}

// TestScoreScenario runs the reference scenario: homepage, about, and
// privacy pages for "Example Manufacturing".
func TestScoreScenario(t *testing.T) {
	t.Parallel()

	pages := []model.PageRecord{
		{URL: "https://example.com/", Title: "Homepage", DeclaredPriority: floatPtr(1.0)},
		{URL: "https://example.com/about-us", Title: "About Us"},
		{URL: "https://example.com/privacy-policy", Title: "Privacy Policy"},
	}

	New(WithClock(fixedNow)).Score(pages, "Example Manufacturing")
	Sort(pages)

	if pages[0].Title != "Homepage" || pages[1].Title != "About Us" || pages[2].Title != "Privacy Policy" {
		t.Fatalf("unexpected order: %v, %v, %v", pages[0].Title, pages[1].Title, pages[2].Title)
	}
	if pages[2].RelevanceScore >= pages[1].RelevanceScore {
		t.Errorf("privacy (%v) should score strictly below about (%v)",
			pages[2].RelevanceScore, pages[1].RelevanceScore)
	}
	for _, p := range pages {
		if p.RelevanceScore < 0 {
			t.Errorf("negative score for %s: %v", p.URL, p.RelevanceScore)
		}
	}
}

// TestSortStability verifies ties keep discovery order.
func TestSortStability(t *testing.T) {
	t.Parallel()

	pages := []model.PageRecord{
		{URL: "https://example.com/first", RelevanceScore: 5},
		{URL: "https://example.com/second", RelevanceScore: 5},
		{URL: "https://example.com/third", RelevanceScore: 8},
	}

	Sort(pages)

	if pages[0].URL != "https://example.com/third" {
		t.Fatalf("highest score not first: %v", pages[0].URL)
	}
	if pages[1].URL != "https://example.com/first" || pages[2].URL != "https://example.com/second" {
		t.Errorf("tie order not stable: %v, %v", pages[1].URL, pages[2].URL)
	}
}
