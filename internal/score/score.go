package score

import (
	"math"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/brightlist/sitescout/internal/model"
)

// Recency window boundaries.
const (
	freshWindow = 30 * 24 * time.Hour
	warmWindow  = 90 * 24 * time.Hour
	staleAge    = 365 * 24 * time.Hour
)

// Scorer assigns relevance scores to discovered pages.
// Scores combine the sitemap's declared priority, path-pattern signals,
// company-name token overlap, and recency.
type Scorer struct {
	// now is the time source for recency checks, injectable for tests.
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock injects the time source used for recency windows.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Scorer.
func New(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score populates RelevanceScore on every page in place.
// Scores are additive, floored at zero, and rounded to one decimal.
func (s *Scorer) Score(pages []model.PageRecord, companyName string) {
	tokens := nameTokens(companyName)
	now := s.now()

	for i := range pages {
		pages[i].RelevanceScore = s.scoreOne(&pages[i], tokens, now)
	}
}

// scoreOne computes the score for a single page.
func (s *Scorer) scoreOne(p *model.PageRecord, tokens []string, now time.Time) float64 {
	score := baseDefault
	if p.DeclaredPriority != nil {
		score = *p.DeclaredPriority * priorityFactor
	}

	lowerURL := strings.ToLower(p.URL)
	lowerPath := "/"
	if u, err := url.Parse(p.URL); err == nil {
		lowerPath = strings.ToLower(u.Path)
	}

	if p.IsRoot() {
		score += boostHomepage
	}
	score += pathAdjustment(lowerPath)

	lowerTitle := strings.ToLower(p.Title)
	for _, tok := range tokens {
		if strings.Contains(lowerURL, tok) {
			score += tokenInURL
		}
		if strings.Contains(lowerTitle, tok) {
			score += tokenInTitle
		}
	}

	if p.LastModified != nil {
		age := now.Sub(*p.LastModified)
		switch {
		case age <= freshWindow:
			score += recencyFresh
		case age <= warmWindow:
			score += recencyWarm
		case age > staleAge:
			score += recencyStale
		}
	}

	if score < 0 {
		score = 0
	}
	return math.Round(score*10) / 10
}

// Sort orders pages by descending relevance score. The sort is stable,
// so ties keep their original discovery order.
func Sort(pages []model.PageRecord) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].RelevanceScore > pages[j].RelevanceScore
	})
}

// nameTokens splits a company display name into lowercase tokens longer
// than two characters. Punctuation and legal suffixes stay in; "Ltd"
// scores like any other token, which in practice only ever helps pages
// that mention the full legal name.
func nameTokens(companyName string) []string {
	fields := strings.FieldsFunc(strings.ToLower(companyName), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
