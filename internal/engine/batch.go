package engine

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brightlist/sitescout/internal/model"
)

// Target is one company to discover pages for.
type Target struct {
	// Company is the display name used for scoring and caching.
	Company string

	// RootURL is the company's website address, possibly schemeless.
	RootURL string
}

// BatchProcessor runs discovery for many companies concurrently.
// Each target gets its own Discover call against a shared Engine, so
// the cache and HTTP connection pool are reused across the batch.
type BatchProcessor struct {
	engine      *Engine
	concurrency int
	limit       int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchConcurrency sets the maximum number of concurrent
// discoveries. Default is 4; each discovery already fans out internally.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLimit sets the per-company page limit.
func WithBatchLimit(limit int) BatchOption {
	return func(b *BatchProcessor) {
		if limit > 0 {
			b.limit = limit
		}
	}
}

// WithBatchLogger sets the logger for batch-level progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchProcessor creates a BatchProcessor over the given Engine.
func NewBatchProcessor(engine *Engine, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		engine:      engine,
		concurrency: 4,
		limit:       engine.cfg.PageLimit,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// ProcessBatch discovers pages for every target concurrently and
// returns results in target order. Per-target failures live inside the
// corresponding DiscoveryResult; the only error returned is context
// cancellation.
func (b *BatchProcessor) ProcessBatch(ctx context.Context, targets []Target) ([]*model.DiscoveryResult, error) {
	b.logger.Info("starting batch discovery",
		"targets", len(targets),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	results := make([]*model.DiscoveryResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			b.logger.Info("discovering",
				"company", target.Company,
				"index", i+1,
				"total", len(targets),
			)
			results[i] = b.engine.Discover(gctx, target.RootURL, target.Company, b.limit)
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch discovery finished",
		"targets", len(targets),
		"elapsed", time.Since(startTime),
	)
	return results, err
}

// ReadTargets parses a CSV target list: one record per line, company
// name then root URL. A header line starting with "company" is
// skipped. Blank company names are rejected; a blank URL is allowed
// and discovers nothing, mirroring Discover's empty-input behavior.
func ReadTargets(r io.Reader) ([]Target, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse target list: %w", err)
	}

	targets := make([]Target, 0, len(records))
	for i, rec := range records {
		company := strings.TrimSpace(rec[0])
		rootURL := strings.TrimSpace(rec[1])

		if i == 0 && strings.EqualFold(company, "company") {
			continue
		}
		if company == "" {
			return nil, fmt.Errorf("target list line %d: empty company name", i+1)
		}
		targets = append(targets, Target{Company: company, RootURL: rootURL})
	}
	return targets, nil
}
