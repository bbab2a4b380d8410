package sitemap

import "errors"

// Resolution errors.
// These surface only for the document a caller asked about directly;
// failures on child sitemaps inside an index are absorbed and logged.
var (
	// ErrFetchFailed is returned when a sitemap document cannot be
	// retrieved (network failure or non-success status).
	ErrFetchFailed = errors.New("sitemap could not be fetched")

	// ErrMalformedDocument is returned when a fetched document is not
	// parseable XML.
	ErrMalformedDocument = errors.New("sitemap is not valid XML")
)
