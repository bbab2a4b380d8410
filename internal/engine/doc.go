// Package engine orchestrates website page discovery.
//
// The Engine wires the discovery stages together: origin normalization,
// cache lookup, sitemap location on the root origin and on live probed
// subdomains, recursive sitemap resolution, URL-level deduplication,
// scoring, and the cache write-back. The public contract is a single
// method, Discover, which never returns a Go error: input problems are
// reported in the result's Error field and network problems are
// absorbed per stage.
//
// BatchProcessor runs many companies through one shared Engine with a
// concurrency cap, for bulk directory enrichment.
package engine
