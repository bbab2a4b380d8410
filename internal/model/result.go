package model

import "time"

// DiscoveryResult is the outcome of one discovery run for a company.
//
// Network-level failures never surface here as Go errors: individual
// fetch failures lower TotalFound and SourcesChecked instead. Error is
// set only when the input address could not be normalized, so callers
// can tell "no website pages found" (empty Pages, empty Error) apart
// from "bad input" (empty Pages, non-empty Error).
type DiscoveryResult struct {
	// Company is the display name the run was scored against.
	Company string `json:"company"`

	// Origin is the normalized scheme+host the run started from.
	// Empty when normalization failed.
	Origin string `json:"origin,omitempty"`

	// Pages holds the ranked pages, best first, truncated to the
	// caller's limit.
	Pages []PageRecord `json:"pages"`

	// Error describes an input failure, or is empty on success.
	Error string `json:"error,omitempty"`

	// TotalFound is the number of distinct pages discovered before
	// truncation.
	TotalFound int `json:"total_found"`

	// SourcesChecked is the number of sitemap documents successfully
	// fetched and parsed during the run. Zero on a cache hit.
	SourcesChecked int `json:"sources_checked"`

	// CacheHit reports whether the result was served from the cache
	// without any network traffic.
	CacheHit bool `json:"cache_hit"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}
