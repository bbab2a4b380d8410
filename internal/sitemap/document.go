package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlDocument captures both recognized sitemap shapes in one decode.
// The root element name distinguishes them: <sitemapindex> carries
// <sitemap> children, <urlset> carries <url> children.
type xmlDocument struct {
	XMLName  xml.Name
	Sitemaps []xmlLocation  `xml:"sitemap"`
	URLs     []xmlPageEntry `xml:"url"`
}

// xmlLocation is one child sitemap reference inside an index document.
type xmlLocation struct {
	Loc string `xml:"loc"`
}

// xmlPageEntry is one page entry inside a urlset document.
// Only Loc is required by the sitemap protocol; the rest are optional
// and arrive as strings to be validated by the resolver.
type xmlPageEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// indexDocument is the explicit index variant: a list of child sitemap
// locations and nothing else.
type indexDocument struct {
	childLocations []string
}

// urlSetDocument is the explicit page-list variant.
type urlSetDocument struct {
	entries []xmlPageEntry
}

// parseDocument decodes sitemap XML into exactly one of the two tagged
// variants. A well-formed document whose root is neither recognized
// shape returns (nil, nil, nil): per the discovery contract that is an
// empty page list, not an error. Malformed XML returns an error.
func parseDocument(data []byte) (*indexDocument, *urlSetDocument, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	switch doc.XMLName.Local {
	case "sitemapindex":
		idx := &indexDocument{childLocations: make([]string, 0, len(doc.Sitemaps))}
		for _, sm := range doc.Sitemaps {
			// Pretty-printed indexes wrap <loc> text in whitespace.
			if loc := strings.TrimSpace(sm.Loc); loc != "" {
				idx.childLocations = append(idx.childLocations, loc)
			}
		}
		return idx, nil, nil
	case "urlset":
		return nil, &urlSetDocument{entries: doc.URLs}, nil
	default:
		return nil, nil, nil
	}
}
