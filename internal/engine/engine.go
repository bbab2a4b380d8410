package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brightlist/sitescout/internal/cache"
	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/model"
	"github.com/brightlist/sitescout/internal/origin"
	"github.com/brightlist/sitescout/internal/probe"
	"github.com/brightlist/sitescout/internal/score"
	"github.com/brightlist/sitescout/internal/sitemap"
)

// Engine composes the discovery stages into the single public entry
// point, Discover.
//
// One Engine is safe for concurrent use: the stages share an HTTP
// client and the cache, and neither holds per-run state.
type Engine struct {
	cfg config.Config

	client   *http.Client
	locator  *sitemap.Locator
	resolver *sitemap.Resolver
	prober   *probe.Prober
	scorer   *score.Scorer
	store    cache.Store
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the result cache. Nil disables caching.
func WithStore(store cache.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets the logger shared by all stages.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client shared by all stages.
// Tests use this to point discovery at local servers.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) {
		if client != nil {
			e.client = client
		}
	}
}

// WithScorer replaces the scorer, typically to inject a clock in tests.
func WithScorer(s *score.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// New creates an Engine from the configuration. Unless overridden by
// options, it caches in memory and logs through slog.Default.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		client: &http.Client{},
		scorer: score.New(),
		logger: slog.Default(),
	}

	if !cfg.NoCache {
		e.store = cache.NewMemoryStore(cache.WithTTL(cfg.CacheTTL))
	}

	for _, opt := range opts {
		opt(e)
	}

	e.locator = sitemap.NewLocator(e.client,
		sitemap.WithLocatorUserAgent(cfg.UserAgent),
		sitemap.WithPathTimeout(cfg.PathTimeout),
		sitemap.WithRobotsTimeout(cfg.ProbeTimeout),
		sitemap.WithLocatorConcurrency(cfg.Concurrency),
		sitemap.WithLocatorLogger(e.logger),
	)
	e.resolver = sitemap.NewResolver(e.client,
		sitemap.WithResolverUserAgent(cfg.UserAgent),
		sitemap.WithResolverTimeout(cfg.SitemapTimeout),
		sitemap.WithMaxDepth(cfg.MaxDepth),
		sitemap.WithResolverConcurrency(cfg.Concurrency),
		sitemap.WithResolverLogger(e.logger),
	)
	e.prober = probe.NewProber(e.client,
		probe.WithProberUserAgent(cfg.UserAgent),
		probe.WithProberTimeout(cfg.ProbeTimeout),
		probe.WithProberConcurrency(cfg.Concurrency),
		probe.WithProberLogger(e.logger),
	)

	return e
}

// Discover finds and ranks the pages of a company's website.
//
// An empty root URL or company name is a normal business fact (the
// record simply has no website) and yields an empty result without an
// error. Only an unparseable root URL sets the result's Error field.
// Network failures along the way never surface; they just reduce
// TotalFound and SourcesChecked.
func (e *Engine) Discover(ctx context.Context, rootURL, companyName string, limit int) *model.DiscoveryResult {
	start := time.Now()
	res := &model.DiscoveryResult{
		Company: companyName,
		Pages:   []model.PageRecord{},
	}

	if strings.TrimSpace(rootURL) == "" || strings.TrimSpace(companyName) == "" {
		res.Elapsed = time.Since(start)
		return res
	}
	if limit <= 0 {
		limit = config.DefaultPageLimit
	}

	o, err := origin.Normalize(rootURL)
	if err != nil {
		res.Error = fmt.Sprintf("invalid website address %q: %v", rootURL, err)
		res.Elapsed = time.Since(start)
		return res
	}
	res.Origin = o.String()

	key := cache.Key(o.String(), companyName)
	if e.store != nil {
		pages, ok, err := e.store.Get(ctx, key)
		if err != nil {
			e.logger.Warn("cache read failed", "key", key, "error", err)
		}
		if ok {
			res.Pages = truncate(pages, limit)
			res.TotalFound = len(pages)
			res.CacheHit = true
			res.Elapsed = time.Since(start)
			e.logger.Debug("cache hit", "origin", o.String(), "company", companyName)
			return res
		}
	}

	sitemapURLs := e.discoverSitemaps(ctx, o)
	pages, checked := e.resolveAll(ctx, sitemapURLs)

	e.scorer.Score(pages, companyName)
	score.Sort(pages)

	if e.store != nil {
		// The full scored set goes in, not the truncated view, so later
		// calls with a larger limit still hit. An empty set is cached
		// too: a site without sitemaps is a settled answer for the TTL,
		// not something to re-crawl on every view.
		if err := e.store.Put(ctx, key, pages); err != nil {
			e.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	res.Pages = truncate(pages, limit)
	res.TotalFound = len(pages)
	res.SourcesChecked = checked
	res.Elapsed = time.Since(start)

	e.logger.Info("discovery finished",
		"origin", o.String(),
		"company", companyName,
		"total_found", res.TotalFound,
		"sources_checked", res.SourcesChecked,
		"elapsed", res.Elapsed,
	)
	return res
}

// discoverSitemaps unions sitemap candidates from the root origin's
// locator run and from every live probed subdomain, deduplicated in
// discovery order.
func (e *Engine) discoverSitemaps(ctx context.Context, root origin.Origin) []string {
	var mu sync.Mutex
	seen := make(map[string]bool)
	urls := make([]string, 0)

	add := func(candidates []string) {
		mu.Lock()
		defer mu.Unlock()
		for _, u := range candidates {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}

	siteCfg, _ := e.cfg.Sites.ForHost(root.Host())

	locate := func(ctx context.Context, o origin.Origin) []string {
		if len(siteCfg.ExtraSitemaps) == 0 {
			return e.locator.Locate(ctx, o)
		}
		l := sitemap.NewLocator(e.client,
			sitemap.WithLocatorUserAgent(e.cfg.UserAgent),
			sitemap.WithPathTimeout(e.cfg.PathTimeout),
			sitemap.WithRobotsTimeout(e.cfg.ProbeTimeout),
			sitemap.WithLocatorConcurrency(e.cfg.Concurrency),
			sitemap.WithLocatorLogger(e.logger),
			sitemap.WithExtraPaths(siteCfg.ExtraSitemaps),
		)
		return l.Locate(ctx, o)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		add(locate(gctx, root))
		return nil
	})

	if !e.cfg.SkipProbe && !siteCfg.SkipProbe {
		g.Go(func() error {
			prober := e.prober
			if len(siteCfg.Subdomains) > 0 {
				prober = probe.NewProber(e.client,
					probe.WithProberUserAgent(e.cfg.UserAgent),
					probe.WithProberTimeout(e.cfg.ProbeTimeout),
					probe.WithProberConcurrency(e.cfg.Concurrency),
					probe.WithProberLogger(e.logger),
					probe.WithLabels(siteCfg.Subdomains),
				)
			}

			sub, subCtx := errgroup.WithContext(gctx)
			sub.SetLimit(e.cfg.Concurrency)
			for _, live := range prober.Probe(gctx, root.Host()) {
				if live == root {
					continue
				}
				sub.Go(func() error {
					add(locate(subCtx, live))
					return nil
				})
			}
			return sub.Wait()
		})
	}

	_ = g.Wait() // stages absorb their own failures

	e.logger.Debug("sitemap discovery finished",
		"origin", root.String(),
		"candidates", len(urls),
	)
	return urls
}

// resolveAll resolves every candidate sitemap concurrently and merges
// the page lists, deduplicating by URL with first-seen metadata kept.
// It returns the merged pages and the count of sitemap documents
// successfully checked across all trees.
func (e *Engine) resolveAll(ctx context.Context, sitemapURLs []string) ([]model.PageRecord, int) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	pages := make([]model.PageRecord, 0)
	checked := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for _, sm := range sitemapURLs {
		g.Go(func() error {
			result, err := e.resolver.Resolve(gctx, sm)
			if err != nil {
				e.logger.Debug("sitemap resolution failed", "url", sm, "error", err)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			checked += result.DocumentsChecked
			for _, p := range result.Pages {
				if !seen[p.URL] {
					seen[p.URL] = true
					pages = append(pages, p)
				}
			}
			return nil
		})
	}
	_ = g.Wait() // per-sitemap failures are absorbed above

	return pages, checked
}

// truncate returns at most limit pages.
func truncate(pages []model.PageRecord, limit int) []model.PageRecord {
	if len(pages) <= limit {
		return pages
	}
	return pages[:limit]
}
