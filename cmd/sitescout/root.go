// Package main provides the entry point for the sitescout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitescout.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitescout",
		Short: "Discover and rank the pages of a company's website",
		Long: `Sitescout reads a website's sitemaps to discover its pages and ranks
them by how useful they are to a business directory visitor.

Given a company name and root URL, it checks well-known sitemap paths,
robots.txt directives, and common subdomains, then scores every
discovered page by path, declared priority, company-name match, and
recency. Results are cached for a day.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewDiscoverCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
