package model

import (
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageRecord represents one page of a company's public website discovered
// through sitemap resolution.
//
// The URL is the record's identity: two PageRecords with the same URL are
// the same page, and callers merging records from multiple sitemaps must
// keep the first-seen record's metadata.
type PageRecord struct {
	// URL is the absolute address of the page. Always syntactically valid;
	// entries without a parseable absolute location are dropped before a
	// PageRecord is created.
	URL string `json:"url"`

	// Title is the human-readable title derived from the URL path.
	// See DeriveTitle for the derivation rules.
	Title string `json:"title"`

	// Category is the visitor-facing label assigned from the URL path.
	Category Category `json:"category"`

	// RelevanceScore ranks the page for a directory visitor researching
	// the company. Never negative; populated by the score package.
	RelevanceScore float64 `json:"relevance_score"`

	// LastModified is the sitemap's lastmod value, when present and
	// parseable. Nil otherwise.
	LastModified *time.Time `json:"last_modified,omitempty"`

	// ChangeFrequency is the sitemap's changefreq value, verbatim.
	ChangeFrequency string `json:"change_frequency,omitempty"`

	// DeclaredPriority is the sitemap's priority value clamped to [0,1].
	// Nil when the sitemap declares none.
	DeclaredPriority *float64 `json:"declared_priority,omitempty"`
}

// titleLang is the language tag used for title casing. A cases.Caser is
// not safe for concurrent use, so DeriveTitle builds a fresh one per call.
var titleLang = language.English

// DeriveTitle derives a human-readable title from a page URL.
//
// The title comes from the final non-empty path segment: the file
// extension is stripped, hyphens and underscores become spaces, and the
// result is title-cased. The origin root (empty path or "/") is titled
// "Homepage". Unparseable URLs fall back to the raw string.
func DeriveTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return "Homepage"
	}

	segments := strings.Split(trimmed, "/")
	segment := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			segment = segments[i]
			break
		}
	}
	if segment == "" {
		return "Homepage"
	}

	segment = strings.TrimSuffix(segment, path.Ext(segment))
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")
	segment = strings.Join(strings.Fields(segment), " ")
	if segment == "" {
		return "Homepage"
	}

	return cases.Title(titleLang).String(segment)
}

// IsRoot reports whether the record's URL points at the origin root
// (empty path or "/", ignoring query and fragment).
func (p *PageRecord) IsRoot() bool {
	u, err := url.Parse(p.URL)
	if err != nil {
		return false
	}
	return u.Path == "" || u.Path == "/"
}
