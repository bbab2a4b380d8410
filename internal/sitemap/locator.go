package sitemap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/errgroup"

	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/origin"
)

// wellKnownPaths are the conventional sitemap locations probed on every
// origin. /wp-sitemap.xml is the WordPress core convention.
var wellKnownPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
	"/wp-sitemap.xml",
	"/sitemap/sitemap.xml",
	"/sitemaps/sitemap.xml",
}

// robotsPath is the robots exclusion document checked for Sitemap
// directives.
const robotsPath = "/robots.txt"

// Locator finds candidate sitemap URLs for one origin by probing
// well-known paths and reading robots.txt Sitemap directives.
//
// An empty result is a normal outcome, not an error: many sites simply
// have no sitemap. Every per-path failure is absorbed.
type Locator struct {
	client        *http.Client
	userAgent     string
	pathTimeout   time.Duration
	robotsTimeout time.Duration
	concurrency   int
	extraPaths    []string
	logger        *slog.Logger
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithLocatorUserAgent sets the User-Agent header for probe requests.
func WithLocatorUserAgent(ua string) LocatorOption {
	return func(l *Locator) {
		l.userAgent = ua
	}
}

// WithPathTimeout sets the per-request timeout for well-known path
// probes.
func WithPathTimeout(d time.Duration) LocatorOption {
	return func(l *Locator) {
		if d > 0 {
			l.pathTimeout = d
		}
	}
}

// WithRobotsTimeout sets the timeout for the robots.txt fetch.
func WithRobotsTimeout(d time.Duration) LocatorOption {
	return func(l *Locator) {
		if d > 0 {
			l.robotsTimeout = d
		}
	}
}

// WithLocatorConcurrency caps simultaneous path probes.
func WithLocatorConcurrency(n int) LocatorOption {
	return func(l *Locator) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithExtraPaths adds well-known paths beyond the built-in list,
// typically from a per-site config override.
func WithExtraPaths(paths []string) LocatorOption {
	return func(l *Locator) {
		l.extraPaths = paths
	}
}

// WithLocatorLogger sets the logger for probe diagnostics.
func WithLocatorLogger(logger *slog.Logger) LocatorOption {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLocator creates a Locator using the given HTTP client.
// The client is shared with the other discovery stages so connection
// pooling works across them.
func NewLocator(client *http.Client, opts ...LocatorOption) *Locator {
	l := &Locator{
		client:        client,
		userAgent:     config.DefaultUserAgent,
		pathTimeout:   config.DefaultPathTimeout,
		robotsTimeout: config.DefaultProbeTimeout,
		concurrency:   config.DefaultConcurrency,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Locate returns the sitemap URLs believed to exist for the origin,
// deduplicated and in a stable order: well-known paths first (in probe
// order), then robots.txt directives. Robots-declared sitemaps are kept
// even when they live on another host.
func (l *Locator) Locate(ctx context.Context, o origin.Origin) []string {
	paths := make([]string, 0, len(wellKnownPaths)+len(l.extraPaths))
	paths = append(paths, wellKnownPaths...)
	paths = append(paths, l.extraPaths...)

	found := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			if l.pathExists(gctx, o.URL(p)) {
				found[i] = true
			}
			return nil
		})
	}

	var robotsSitemaps []string
	var robotsWG sync.WaitGroup
	robotsWG.Add(1)
	go func() {
		defer robotsWG.Done()
		robotsSitemaps = l.robotsSitemaps(ctx, o)
	}()

	_ = g.Wait() // probe goroutines never return errors
	robotsWG.Wait()

	seen := make(map[string]bool)
	urls := make([]string, 0, len(paths)+len(robotsSitemaps))
	for i, p := range paths {
		if !found[i] {
			continue
		}
		u := o.URL(p)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, u := range robotsSitemaps {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	l.logger.Debug("sitemap location finished",
		"origin", o.String(),
		"candidates", len(urls),
	)
	return urls
}

// pathExists probes one well-known path. A path counts as present on a
// 2xx response with a non-empty body; anything else, including a
// timeout, counts as absent.
func (l *Locator) pathExists(ctx context.Context, rawURL string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, l.pathTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Debug("sitemap path probe failed", "url", rawURL, "error", err)
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}

	// One byte is enough to prove the document is non-empty.
	buf := make([]byte, 1)
	n, _ := resp.Body.Read(buf)
	return n > 0
}

// robotsSitemaps fetches robots.txt and returns its Sitemap directives.
// The robotstxt parser matches the directive case-insensitively and
// keeps URLs verbatim, wherever they point.
func (l *Locator) robotsSitemaps(ctx context.Context, o origin.Origin) []string {
	reqCtx, cancel := context.WithTimeout(ctx, l.robotsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, o.URL(robotsPath), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Debug("robots.txt fetch failed", "origin", o.String(), "error", err)
		return nil
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, config.DefaultMaxBodySize))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		l.logger.Debug("robots.txt parse failed", "origin", o.String(), "error", err)
		return nil
	}

	return data.Sitemaps
}
