package model

import (
	"net/url"
	"strings"
)

// Category labels a page by what a directory visitor would use it for.
type Category string

// Page category constants.
const (
	// CategoryHomepage is the origin root page.
	CategoryHomepage Category = "Homepage"
	// CategoryAbout covers company/about/who-we-are pages.
	CategoryAbout Category = "About"
	// CategoryServices covers services, products, and solutions pages.
	CategoryServices Category = "Services"
	// CategoryContact covers contact and location pages.
	CategoryContact Category = "Contact"
	// CategoryCareers covers careers, jobs, and hiring pages.
	CategoryCareers Category = "Careers"
	// CategoryNews covers news, blog, and press pages.
	CategoryNews Category = "News"
	// CategoryTeam covers team and leadership pages.
	CategoryTeam Category = "Team"
	// CategoryPortfolio covers portfolio, case study, and project pages.
	CategoryPortfolio Category = "Portfolio"
	// CategorySupport covers support, help, and documentation pages.
	CategorySupport Category = "Support"
	// CategoryOther is the fallback when no rule matches.
	CategoryOther Category = "Other"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	if c == "" {
		return string(CategoryOther)
	}
	return string(c)
}

// categoryRule pairs path keywords with the category they select.
// Rules are evaluated in order and the first match wins, so more
// specific keyword sets must come before broader ones.
type categoryRule struct {
	keywords []string
	category Category
}

// categoryRules is the ordered first-match-wins rule table used by
// CategorizeURL. The homepage case (empty path) is handled before this
// table is consulted.
var categoryRules = []categoryRule{
	{[]string{"about", "company", "who-we-are", "our-story", "mission"}, CategoryAbout},
	{[]string{"service", "product", "solution", "offering", "what-we-do"}, CategoryServices},
	{[]string{"contact", "get-in-touch", "find-us", "location"}, CategoryContact},
	{[]string{"career", "job", "vacanc", "join-us", "hiring", "work-with-us"}, CategoryCareers},
	{[]string{"news", "blog", "press", "article", "media"}, CategoryNews},
	{[]string{"team", "leadership", "people", "staff", "management"}, CategoryTeam},
	{[]string{"portfolio", "case-stud", "project", "our-work", "showcase"}, CategoryPortfolio},
	{[]string{"support", "help", "faq", "docs", "documentation", "knowledge"}, CategorySupport},
}

// CategorizeURL assigns a category to a page URL by testing its path
// against the ordered keyword rules. The origin root (empty path or "/")
// is always CategoryHomepage; a path matching no rule is CategoryOther.
func CategorizeURL(rawURL string) Category {
	u, err := url.Parse(rawURL)
	if err != nil {
		return CategoryOther
	}

	p := strings.ToLower(strings.Trim(u.Path, "/"))
	if p == "" {
		return CategoryHomepage
	}

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(p, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
