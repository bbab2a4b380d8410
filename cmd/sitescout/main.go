// Package main provides the entry point for the sitescout CLI.
//
// Sitescout discovers and ranks the pages of a company's website by
// reading its sitemaps, for enriching business directory listings.
//
// Usage:
//
//	sitescout discover --company "Acme Widgets" acme.com
//	sitescout discover --list companies.csv
//
// See --help for all available options.
package main

// main is the entry point for sitescout.
func main() {
	Execute()
}
