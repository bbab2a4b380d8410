// Package sitemap locates and resolves sitemap documents for one origin.
//
// # Components
//
//   - Locator: probes well-known sitemap paths and reads robots.txt
//     Sitemap directives for one origin
//   - Resolver: fetches one sitemap document and flattens it, expanding
//     index documents recursively with cycle and depth guards
//
// Both recognize that absence is normal: a site without a sitemap yields
// an empty candidate set, and a document that is valid XML of some other
// vocabulary yields an empty page list. Only the document a caller asked
// about directly can fail with an error.
//
// XML is decoded into one of two explicit variants (index or urlset)
// before any business logic runs, keyed on the root element name.
package sitemap
