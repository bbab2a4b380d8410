package sitemap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/sync/errgroup"

	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/model"
)

// Resolver fetches sitemap documents and flattens them into page
// records, expanding index documents recursively.
//
// Recursion is bounded two ways: a visited-URL set shared across one
// resolution run defeats direct and mutual index cycles, and a depth
// cap bounds adversarial deep chains. Neither bound is an error when
// hit; the offending branch just stops contributing pages.
type Resolver struct {
	client      *http.Client
	userAgent   string
	timeout     time.Duration
	maxDepth    int
	maxBodySize int64
	concurrency int
	logger      *slog.Logger
}

// Result is the outcome of resolving one sitemap tree.
type Result struct {
	// Pages is the flat list of page records, in document order for a
	// urlset and child-by-child for an index.
	Pages []model.PageRecord

	// DocumentsChecked counts sitemap documents successfully fetched
	// and parsed anywhere in the tree, index documents included.
	DocumentsChecked int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverUserAgent sets the User-Agent header for document fetches.
func WithResolverUserAgent(ua string) ResolverOption {
	return func(r *Resolver) {
		r.userAgent = ua
	}
}

// WithResolverTimeout sets the per-document fetch timeout.
func WithResolverTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithMaxDepth caps recursion through nested index documents.
// Depth 1 resolves only the document given to Resolve.
func WithMaxDepth(depth int) ResolverOption {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithResolverMaxBodySize limits how many bytes of a document are read.
func WithResolverMaxBodySize(size int64) ResolverOption {
	return func(r *Resolver) {
		if size > 0 {
			r.maxBodySize = size
		}
	}
}

// WithResolverConcurrency caps simultaneous child fetches per index.
func WithResolverConcurrency(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithResolverLogger sets the logger for resolution diagnostics.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver using the given HTTP client.
func NewResolver(client *http.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:      client,
		userAgent:   config.DefaultUserAgent,
		timeout:     config.DefaultSitemapTimeout,
		maxDepth:    config.DefaultMaxDepth,
		maxBodySize: config.DefaultMaxBodySize,
		concurrency: config.DefaultConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// treeState is the shared state of one resolution run.
type treeState struct {
	mu      sync.Mutex
	visited map[string]bool
	checked atomic.Int64
}

// markVisited records the URL and reports whether it was new.
func (s *treeState) markVisited(rawURL string) bool {
	key := normalizeKey(rawURL)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited[key] {
		return false
	}
	s.visited[key] = true
	return true
}

// normalizeKey canonicalizes a sitemap URL for cycle detection.
// Fragment is dropped and scheme/host are lowercased so the same
// document spelled two ways cannot reopen a cycle.
func normalizeKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// Resolve fetches and flattens one sitemap tree.
//
// Only the root document's failure surfaces as an error; child sitemaps
// inside an index that fail to fetch or parse are logged and skipped,
// matching the engine's partial-failure policy.
func (r *Resolver) Resolve(ctx context.Context, sitemapURL string) (*Result, error) {
	state := &treeState{visited: make(map[string]bool)}
	state.markVisited(sitemapURL)

	pages, err := r.resolve(ctx, state, sitemapURL, 1)
	if err != nil {
		return nil, err
	}

	return &Result{
		Pages:            pages,
		DocumentsChecked: int(state.checked.Load()),
	}, nil
}

// resolve handles one document at the given depth. The caller has
// already marked the URL visited.
func (r *Resolver) resolve(ctx context.Context, state *treeState, sitemapURL string, depth int) ([]model.PageRecord, error) {
	data, err := r.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	index, urlSet, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", sitemapURL, err)
	}
	state.checked.Add(1)

	switch {
	case index != nil:
		return r.resolveIndex(ctx, state, sitemapURL, index, depth)
	case urlSet != nil:
		return r.convertEntries(urlSet.entries), nil
	default:
		// Well-formed XML of some unrelated vocabulary.
		r.logger.Debug("document is neither index nor urlset", "url", sitemapURL)
		return nil, nil
	}
}

// resolveIndex expands an index document's children concurrently.
func (r *Resolver) resolveIndex(ctx context.Context, state *treeState, indexURL string, index *indexDocument, depth int) ([]model.PageRecord, error) {
	if depth >= r.maxDepth {
		r.logger.Warn("sitemap index at max depth, children skipped",
			"url", indexURL,
			"depth", depth,
		)
		return nil, nil
	}

	var mu sync.Mutex
	pages := make([]model.PageRecord, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, child := range index.childLocations {
		if !isAbsoluteURL(child) {
			r.logger.Debug("skipping non-absolute child location", "loc", child)
			continue
		}
		if !state.markVisited(child) {
			r.logger.Debug("skipping already-visited sitemap", "url", child)
			continue
		}

		g.Go(func() error {
			childPages, err := r.resolve(gctx, state, child, depth+1)
			if err != nil {
				r.logger.Debug("child sitemap failed", "url", child, "error", err)
				return nil
			}
			mu.Lock()
			pages = append(pages, childPages...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // child errors are absorbed above

	return pages, nil
}

// convertEntries turns raw urlset entries into page records, deriving
// title and category and parsing the optional fields leniently.
func (r *Resolver) convertEntries(entries []xmlPageEntry) []model.PageRecord {
	pages := make([]model.PageRecord, 0, len(entries))
	for _, e := range entries {
		loc := strings.TrimSpace(e.Loc)
		if !isAbsoluteURL(loc) {
			r.logger.Debug("skipping entry without absolute location", "loc", e.Loc)
			continue
		}

		page := model.PageRecord{
			URL:             loc,
			Title:           model.DeriveTitle(loc),
			Category:        model.CategorizeURL(loc),
			ChangeFrequency: strings.TrimSpace(e.ChangeFreq),
		}

		if lm := strings.TrimSpace(e.LastMod); lm != "" {
			// lastmod formats in the wild range from bare dates to
			// RFC 3339 with offsets; parse leniently and drop what
			// still fails.
			if ts, err := dateparse.ParseAny(lm); err == nil {
				page.LastModified = &ts
			}
		}

		if p := strings.TrimSpace(e.Priority); p != "" {
			if f, err := strconv.ParseFloat(p, 64); err == nil {
				f = min(max(f, 0), 1)
				page.DeclaredPriority = &f
			}
		}

		pages = append(pages, page)
	}
	return pages
}

// fetch retrieves one sitemap document within the resolver's timeout.
func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/xml,text/xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", ErrFetchFailed, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return body, nil
}

// isAbsoluteURL reports whether s parses as an absolute http(s) URL.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
