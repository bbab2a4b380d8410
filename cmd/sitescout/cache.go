package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightlist/sitescout/internal/cache"
	"github.com/brightlist/sitescout/internal/config"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persistent discovery result cache",
	}

	cmd.AddCommand(newCachePurgeCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCachePurgeCmd creates the cache purge subcommand.
func newCachePurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all cached discovery results",
		Long: `Purge deletes every cached discovery result.

Use this after a website has been restructured and you want fresh
results before the cache entries expire on their own.`,
		RunE: runCachePurgeCmd,
	}

	cmd.Flags().String("cache-dir", "",
		"Cache directory (default: XDG cache directory)")

	return cmd
}

// runCachePurgeCmd executes the cache purge subcommand.
func runCachePurgeCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.DefaultCacheDir()
	}

	store, err := cache.OpenSQLite(dir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer store.Close()

	n, err := store.Purge(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached result(s) from %s\n", n, store.Path())
	return nil
}

// newCachePathCmd creates the cache path subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultCacheDir())
		},
	}
}
