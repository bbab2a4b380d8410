package probe

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"

	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/origin"
)

// DefaultLabels are the subdomain labels probed for liveness, roughly
// the ones company sites actually hang content on. Order does not
// matter; probes run concurrently and results are a set.
var DefaultLabels = []string{
	"www", "blog", "news", "shop", "store", "support", "help",
	"docs", "careers", "jobs", "about", "portal", "app", "m",
	"dev", "status", "wiki", "mail",
}

// Prober checks common subdomains of a base domain for liveness.
//
// A subdomain is live only on a successful terminal status after a
// short redirect chain. Timeouts, DNS failures, and error statuses just
// exclude that label; they never abort the probe.
type Prober struct {
	client      *http.Client
	userAgent   string
	timeout     time.Duration
	concurrency int
	labels      []string
	logger      *slog.Logger
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProberUserAgent sets the User-Agent header for probe requests.
func WithProberUserAgent(ua string) ProberOption {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithProberTimeout sets the per-probe timeout.
func WithProberTimeout(d time.Duration) ProberOption {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithProberConcurrency caps simultaneous probes.
func WithProberConcurrency(n int) ProberOption {
	return func(p *Prober) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLabels replaces the default label list, typically from a per-site
// config override.
func WithLabels(labels []string) ProberOption {
	return func(p *Prober) {
		if len(labels) > 0 {
			p.labels = labels
		}
	}
}

// WithProberLogger sets the logger for probe diagnostics.
func WithProberLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProber creates a Prober. The given client's transport is reused,
// but redirect handling is overridden to stop after the redirect budget
// without failing the probe.
func NewProber(client *http.Client, opts ...ProberOption) *Prober {
	p := &Prober{
		userAgent:   config.DefaultUserAgent,
		timeout:     config.DefaultProbeTimeout,
		concurrency: config.DefaultConcurrency,
		labels:      DefaultLabels,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	probeClient := &http.Client{
		Transport: client.Transport,
		Jar:       client.Jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= config.DefaultMaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	p.client = probeClient

	return p
}

// BaseDomain reduces a hostname to its registrable domain (eTLD+1), the
// anchor for subdomain probing. Hosts without a registrable domain
// (IPs, localhost, single labels) come back unchanged minus any "www."
// prefix and port.
func BaseDomain(host string) string {
	h := strings.ToLower(host)
	if stripped, _, err := net.SplitHostPort(h); err == nil {
		h = stripped
	}

	base, err := publicsuffix.EffectiveTLDPlusOne(h)
	if err != nil {
		return strings.TrimPrefix(h, "www.")
	}
	return base
}

// Probe returns the live origins among https://{label}.{base} for the
// prober's label list. The base is derived from host via BaseDomain.
// A label whose origin equals the caller's own origin is still probed;
// the caller deduplicates.
func (p *Prober) Probe(ctx context.Context, host string) []origin.Origin {
	base := BaseDomain(host)
	if base == "" {
		return nil
	}

	var mu sync.Mutex
	live := make([]origin.Origin, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, label := range p.labels {
		candidate := origin.Origin("https://" + label + "." + base)
		g.Go(func() error {
			if p.isLive(gctx, candidate) {
				mu.Lock()
				live = append(live, candidate)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // probe goroutines never return errors

	p.logger.Debug("subdomain probe finished",
		"base", base,
		"probed", len(p.labels),
		"live", len(live),
	)
	return live
}

// isLive issues one HEAD request against the origin root.
// 2xx is live; 3xx is live too, since the redirect budget may stop on
// an intermediate hop that still proves the host serves traffic.
func (p *Prober) isLive(ctx context.Context, o origin.Origin) bool {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, o.String()+"/", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("subdomain probe failed", "origin", o.String(), "error", err)
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
