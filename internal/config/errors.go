package config

import "errors"

// Configuration validation errors.
// These are package-level sentinels so callers can use errors.Is for
// programmatic handling while still getting a readable message.
var (
	// ErrInvalidTimeout is returned when any per-request timeout is not
	// positive. A zero timeout would fail every request immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency cap is not
	// positive. Zero concurrency would stall every discovery stage.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidPageLimit is returned when the page limit is not positive.
	ErrInvalidPageLimit = errors.New("invalid page limit: must be positive")

	// ErrInvalidCacheTTL is returned when the cache TTL is not positive.
	// Use NoCache to disable caching rather than a zero TTL.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrInvalidMaxDepth is returned when the sitemap recursion depth is
	// not positive. Depth 1 means only the documents discovery found
	// directly, with no index expansion.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are set. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoTarget is returned when neither a website address nor a list
	// file is given to the discover command.
	ErrNoTarget = errors.New("no target specified: provide a website address or use --list")

	// ErrNoCompanyName is returned when a website address is given
	// without a company name to score against.
	ErrNoCompanyName = errors.New("no company name specified: use --company")
)
