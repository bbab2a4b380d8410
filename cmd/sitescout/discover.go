package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brightlist/sitescout/internal/cache"
	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/engine"
	logpkg "github.com/brightlist/sitescout/internal/log"
	"github.com/brightlist/sitescout/internal/report"
)

// NewDiscoverCmd creates the discover command.
func NewDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover [website-address]",
		Short: "Discover and rank a company website's pages",
		Long: `Discover reads a website's sitemaps and ranks the pages it finds.

It checks well-known sitemap paths and robots.txt on the root origin,
probes common subdomains (www, blog, shop, and so on) for additional
sitemaps, resolves nested sitemap indexes, and scores every page by
how useful it is to a directory visitor.

Examples:
  # Discover pages for a single company
  sitescout discover --company "Acme Widgets" acme.com

  # Process a CSV list of companies (company name, website address)
  sitescout discover --list companies.csv

  # Output JSON, keep the top 10 pages
  sitescout discover --company "Acme Widgets" --json --limit 10 acme.com

  # Skip subdomain probing and the cache
  sitescout discover --company "Acme Widgets" --no-probe --no-cache acme.com

Configuration file (.sitescout) example:
  sites:
    acme.com:
      extra_sitemaps:
        - /custom/sitemap.xml
      subdomains: [www, shop]
    quiet.example:
      skip_probe: true`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiscoverCmd,
	}

	cmd.Flags().StringP("company", "n", "", "Company name used for scoring and caching")
	cmd.Flags().StringP("list", "l", "", "CSV file of targets: company name, website address")
	cmd.Flags().IntP("limit", "p", config.DefaultPageLimit, "Maximum number of ranked pages to return")
	cmd.Flags().IntP("batch", "b", 4, "Number of concurrent discoveries in list mode")

	// Request behavior flags
	cmd.Flags().Duration("probe-timeout", config.DefaultProbeTimeout,
		"Timeout for subdomain liveness checks and robots.txt fetches")
	cmd.Flags().DurationP("sitemap-timeout", "t", config.DefaultSitemapTimeout,
		"Timeout for each sitemap document fetch")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum concurrent requests per discovery stage")
	cmd.Flags().Bool("no-probe", false,
		"Skip subdomain probing; check only the root origin")

	// Cache flags
	cmd.Flags().Bool("no-cache", false, "Disable the result cache")
	cmd.Flags().String("cache-dir", "",
		"Cache directory (default: XDG cache directory)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitescout in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runDiscoverCmd executes the discover command.
func runDiscoverCmd(cmd *cobra.Command, args []string) error {
	cfg, targets, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logpkg.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	batchSize, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}

	return runDiscover(ctx, cfg, targets, outputPath, batchSize, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config and target list from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (config.Config, []engine.Target, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.ProbeTimeout, err = cmd.Flags().GetDuration("probe-timeout")
	if err != nil {
		return cfg, nil, err
	}

	cfg.SitemapTimeout, err = cmd.Flags().GetDuration("sitemap-timeout")
	if err != nil {
		return cfg, nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return cfg, nil, err
	}

	cfg.PageLimit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return cfg, nil, err
	}

	cfg.SkipProbe, err = cmd.Flags().GetBool("no-probe")
	if err != nil {
		return cfg, nil, err
	}

	cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return cfg, nil, err
	}

	cfg.CacheDir, err = cmd.Flags().GetString("cache-dir")
	if err != nil {
		return cfg, nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return cfg, nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return cfg, nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return cfg, nil, err
	}

	if err := loadSiteConfigs(&cfg); err != nil {
		return cfg, nil, err
	}

	targets, err := buildTargets(cmd, args)
	if err != nil {
		return cfg, nil, err
	}

	return cfg, targets, nil
}

// loadSiteConfigs loads per-domain overrides from the config file.
// An explicitly specified path must exist; an implicit search that
// finds nothing yields an empty config.
func loadSiteConfigs(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)

	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		cfg.Sites = &config.File{Sites: make(map[string]config.SiteConfig)}
		return nil
	}

	sites, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.Sites = sites
	return nil
}

// buildTargets resolves the target list: either the single positional
// website address with --company, or a CSV file via --list.
func buildTargets(cmd *cobra.Command, args []string) ([]engine.Target, error) {
	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	company, err := cmd.Flags().GetString("company")
	if err != nil {
		return nil, err
	}

	if listPath != "" {
		if len(args) > 0 || company != "" {
			return nil, errors.New("--list cannot be combined with a positional address or --company")
		}

		f, err := os.Open(listPath) //nolint:gosec // User-provided list path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to open target list: %w", err)
		}
		defer f.Close()

		return engine.ReadTargets(f)
	}

	if len(args) == 0 {
		return nil, config.ErrNoTarget
	}
	if company == "" {
		return nil, config.ErrNoCompanyName
	}

	return []engine.Target{{Company: company, RootURL: args[0]}}, nil
}

// runDiscover executes discovery for all targets and writes reports.
func runDiscover(ctx context.Context, cfg config.Config, targets []engine.Target, outputPath string, batchSize int, logger *slog.Logger) error {
	opts := []engine.Option{engine.WithLogger(logger)}

	// Persistent cache unless disabled.
	if !cfg.NoCache {
		dir := cfg.CacheDir
		if dir == "" {
			dir = config.DefaultCacheDir()
		}
		store, err := cache.OpenSQLite(dir, cache.WithSQLiteTTL(cfg.CacheTTL))
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close cache", "error", err)
			}
		}()
		logger.Info("cache opened", "path", store.Path())
		opts = append(opts, engine.WithStore(store))
	}

	e := engine.New(cfg, opts...)

	if len(targets) == 1 {
		batchSize = 1
	}
	bp := engine.NewBatchProcessor(e,
		engine.WithBatchConcurrency(batchSize),
		engine.WithBatchLimit(cfg.PageLimit),
		engine.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, targets)
	if err != nil {
		return err
	}

	output, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	writer := newReportWriter(cfg, output)
	for _, res := range results {
		if res == nil {
			continue
		}
		if _, err := writer.Write(res); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}

// openOutput returns the report destination: a file when a path is
// given, stdout otherwise.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// newReportWriter selects the report format from the configuration.
func newReportWriter(cfg config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
