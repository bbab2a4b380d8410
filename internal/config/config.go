package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Timeouts are tiered by how heavy the request is: liveness probes and
// robots.txt are cheap, well-known path probes carry a small body, and
// sitemap documents can be large.
const (
	// DefaultUserAgent identifies sitescout in HTTP requests. A
	// descriptive User-Agent lets site operators identify discovery
	// traffic in their logs.
	DefaultUserAgent = "sitescout/1.0 (+https://github.com/brightlist/sitescout)"

	// DefaultProbeTimeout applies to subdomain liveness checks and
	// robots.txt fetches.
	DefaultProbeTimeout = 5 * time.Second

	// DefaultPathTimeout applies to each well-known sitemap path probe.
	DefaultPathTimeout = 10 * time.Second

	// DefaultSitemapTimeout applies to sitemap document fetches, which
	// may be several megabytes on large sites.
	DefaultSitemapTimeout = 15 * time.Second

	// DefaultConcurrency caps simultaneous in-flight requests per stage.
	// Discovery fans out per well-known path, per subdomain label, and
	// per sitemap document; an uncapped fan-out would hammer the target.
	DefaultConcurrency = 10

	// DefaultCacheTTL is how long a discovery result stays fresh.
	// Company websites change slowly; a day avoids re-crawling sitemaps
	// on every directory view.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultPageLimit is the number of ranked pages returned when the
	// caller does not specify a limit.
	DefaultPageLimit = 20

	// DefaultMaxDepth bounds recursion through nested sitemap indexes.
	// Real sites rarely nest past two levels; the cap exists for
	// malformed or adversarial index chains.
	DefaultMaxDepth = 5

	// DefaultMaxBodySize limits how much of a sitemap document is read.
	// 10MB covers the sitemap protocol's own size cap with headroom.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// DefaultMaxRedirects is the redirect budget for liveness probes.
	DefaultMaxRedirects = 5

	// AppName is the application name used for XDG directory paths.
	AppName = "sitescout"
)

// Config holds all options for the discovery engine and CLI.
// It is populated from defaults and CLI flags and passed through the
// application by value rather than held as global state.
type Config struct {
	// UserAgent is sent on every outbound request.
	UserAgent string

	// ProbeTimeout is the per-request timeout for subdomain liveness
	// checks and robots.txt fetches.
	ProbeTimeout time.Duration

	// PathTimeout is the per-request timeout for well-known sitemap
	// path probes.
	PathTimeout time.Duration

	// SitemapTimeout is the per-request timeout for sitemap document
	// fetches.
	SitemapTimeout time.Duration

	// Concurrency caps simultaneous requests within each discovery
	// stage.
	Concurrency int

	// CacheTTL is how long cached discovery results stay fresh.
	CacheTTL time.Duration

	// PageLimit is the number of ranked pages to return.
	PageLimit int

	// MaxDepth bounds recursion through nested sitemap indexes.
	MaxDepth int

	// SkipProbe disables subdomain probing, restricting discovery to
	// the root origin.
	SkipProbe bool

	// NoCache disables the result cache entirely.
	NoCache bool

	// CacheDir is the directory holding the persistent result cache.
	// Empty means DefaultCacheDir().
	CacheDir string

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport selects JSON output instead of the human-readable
	// report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output instead of the
	// human-readable report. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ConfigFilePath is an explicit path to the .sitescout config file.
	// Empty means search the working directory and then the home
	// directory.
	ConfigFilePath string

	// Sites holds per-domain overrides loaded from the config file.
	Sites *File
}

// NewConfig returns a Config populated with defaults.
func NewConfig() Config {
	return Config{
		UserAgent:      DefaultUserAgent,
		ProbeTimeout:   DefaultProbeTimeout,
		PathTimeout:    DefaultPathTimeout,
		SitemapTimeout: DefaultSitemapTimeout,
		Concurrency:    DefaultConcurrency,
		CacheTTL:       DefaultCacheTTL,
		PageLimit:      DefaultPageLimit,
		MaxDepth:       DefaultMaxDepth,
	}
}

// Validate checks the configuration for invalid values.
// It returns one of the package sentinel errors on failure.
func (c Config) Validate() error {
	if c.ProbeTimeout <= 0 || c.PathTimeout <= 0 || c.SitemapTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.PageLimit <= 0 {
		return ErrInvalidPageLimit
	}
	if c.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if c.MaxDepth <= 0 {
		return ErrInvalidMaxDepth
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// DefaultCacheDir returns the XDG cache directory for sitescout.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
