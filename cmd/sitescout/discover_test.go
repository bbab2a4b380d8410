package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/brightlist/sitescout/internal/config"
)

// TestNewDiscoverCmd tests the discover command definition.
func TestNewDiscoverCmd(t *testing.T) {
	t.Parallel()

	cmd := NewDiscoverCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "discover [website-address]" {
			t.Errorf("unexpected use: %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{
			"company", "list", "limit", "batch",
			"probe-timeout", "sitemap-timeout", "concurrency", "no-probe",
			"no-cache", "cache-dir", "config", "json", "markdown", "output",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("missing flag %q", name)
			}
		}
	})

	t.Run("limit defaults to page limit", func(t *testing.T) {
		t.Parallel()

		flag := cmd.Flags().Lookup("limit")
		if flag.DefValue != "20" {
			t.Errorf("limit default = %q, want 20", flag.DefValue)
		}
	})
}

// TestBuildConfig tests flag-to-config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults with a single target", func(t *testing.T) {
		t.Parallel()

		cmd := NewDiscoverCmd()
		if err := cmd.Flags().Set("company", "Acme Widgets"); err != nil {
			t.Fatal(err)
		}

		cfg, targets, err := buildConfig(cmd, []string{"acme.com"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, config.DefaultConcurrency)
		}
		if cfg.PageLimit != config.DefaultPageLimit {
			t.Errorf("PageLimit = %d, want %d", cfg.PageLimit, config.DefaultPageLimit)
		}
		if cfg.Sites == nil {
			t.Error("Sites should default to an empty config")
		}

		if len(targets) != 1 {
			t.Fatalf("expected 1 target, got %d", len(targets))
		}
		if targets[0].Company != "Acme Widgets" || targets[0].RootURL != "acme.com" {
			t.Errorf("unexpected target: %+v", targets[0])
		}
	})

	t.Run("missing target fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewDiscoverCmd()
		_, _, err := buildConfig(cmd, nil)
		if !errors.Is(err, config.ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("missing company fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewDiscoverCmd()
		_, _, err := buildConfig(cmd, []string{"acme.com"})
		if !errors.Is(err, config.ErrNoCompanyName) {
			t.Errorf("expected ErrNoCompanyName, got %v", err)
		}
	})

	t.Run("list mode reads targets from CSV", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "targets.csv")
		data := "company,url\nAcme Widgets,acme.com\nExample Manufacturing,example.com\n"
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewDiscoverCmd()
		if err := cmd.Flags().Set("list", path); err != nil {
			t.Fatal(err)
		}

		_, targets, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if len(targets) != 2 {
			t.Fatalf("expected 2 targets, got %d", len(targets))
		}
		if targets[1].Company != "Example Manufacturing" {
			t.Errorf("unexpected second target: %+v", targets[1])
		}
	})

	t.Run("list conflicts with positional target", func(t *testing.T) {
		t.Parallel()

		cmd := NewDiscoverCmd()
		if err := cmd.Flags().Set("list", "targets.csv"); err != nil {
			t.Fatal(err)
		}

		_, _, err := buildConfig(cmd, []string{"acme.com"})
		if err == nil {
			t.Error("expected error combining --list with a positional address")
		}
	})

	t.Run("conflicting report formats fail validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewDiscoverCmd()
		for _, name := range []string{"company", "json", "markdown"} {
			val := "true"
			if name == "company" {
				val = "Acme Widgets"
			}
			if err := cmd.Flags().Set(name, val); err != nil {
				t.Fatal(err)
			}
		}

		cfg, _, err := buildConfig(cmd, []string{"acme.com"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("explicit missing config file fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewDiscoverCmd()
		if err := cmd.Flags().Set("company", "Acme Widgets"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatal(err)
		}

		_, _, err := buildConfig(cmd, []string{"acme.com"})
		if err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file overrides are loaded", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sitescout")
		data := "sites:\n  acme.com:\n    skip_probe: true\n    extra_sitemaps:\n      - /custom/sitemap.xml\n"
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewDiscoverCmd()
		if err := cmd.Flags().Set("company", "Acme Widgets"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatal(err)
		}

		cfg, _, err := buildConfig(cmd, []string{"acme.com"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		site, ok := cfg.Sites.ForHost("acme.com")
		if !ok {
			t.Fatal("acme.com site config not loaded")
		}
		if !site.SkipProbe || len(site.ExtraSitemaps) != 1 {
			t.Errorf("unexpected site config: %+v", site)
		}
	})
}
