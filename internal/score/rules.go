package score

import (
	"path"
	"strings"
)

// Scoring weights. All adjustments are additive on top of the base
// score; the final score is floored at zero.
const (
	// baseDefault applies when the sitemap declares no priority.
	baseDefault = 5.0

	// priorityFactor scales a declared priority in [0,1] into the base.
	priorityFactor = 10.0

	boostHomepage  = 20.0
	boostAbout     = 15.0
	boostServices  = 12.0
	boostContact   = 10.0
	boostCareers   = 8.0
	boostTeam      = 8.0
	boostPortfolio = 7.0
	boostNews      = 6.0

	penaltyAdmin    = -15.0
	penaltyArtifact = -10.0
	penaltyLegal    = -8.0
	penaltyArchive  = -6.0
	penaltyDocument = -5.0

	// Name-relevance rewards per company-name token.
	tokenInURL   = 5.0
	tokenInTitle = 3.0

	// Recency adjustments keyed off lastmod age.
	recencyFresh = 3.0
	recencyWarm  = 1.0
	recencyStale = -2.0
)

// pathRule adds weight when any of its keywords appears in the URL path.
// Unlike categorization, scoring rules are not exclusive: a path can
// collect several boosts and penalties in one pass.
type pathRule struct {
	keywords []string
	weight   float64
}

// pathRules is evaluated in a single ordered pass per page.
var pathRules = []pathRule{
	{[]string{"about", "company", "who-we-are", "our-story"}, boostAbout},
	{[]string{"service", "product", "solution", "offering"}, boostServices},
	{[]string{"contact", "get-in-touch", "find-us"}, boostContact},
	{[]string{"career", "job", "vacanc", "hiring"}, boostCareers},
	{[]string{"team", "leadership", "people", "management"}, boostTeam},
	{[]string{"portfolio", "case-stud", "our-work", "showcase"}, boostPortfolio},
	{[]string{"news", "blog", "press", "article"}, boostNews},
	{[]string{"admin", "login", "signin", "wp-admin", "account"}, penaltyAdmin},
	{[]string{"sitemap", "feed", "robots", "rss", "atom"}, penaltyArtifact},
	{[]string{"privacy", "terms", "legal", "cookie-policy", "disclaimer", "gdpr"}, penaltyLegal},
	{[]string{"/tag/", "/tags/", "/category/", "/categories/", "/author/", "/archive"}, penaltyArchive},
}

// documentExtensions are downloadable-document suffixes penalized as
// unlikely landing pages for a directory visitor.
var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true,
	".xlsx": true, ".ppt": true, ".pptx": true, ".zip": true,
	".csv": true,
}

// pathAdjustment sums every matching rule's weight for a lowercased
// URL path. The homepage boost is handled by the caller since it keys
// on the whole path, not a keyword.
func pathAdjustment(lowerPath string) float64 {
	total := 0.0
	for _, rule := range pathRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowerPath, kw) {
				total += rule.weight
				break
			}
		}
	}
	if documentExtensions[path.Ext(lowerPath)] {
		total += penaltyDocument
	}
	return total
}
