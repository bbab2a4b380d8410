// Package model defines the core data structures used throughout sitescout.
//
// This package contains the following main types:
//   - PageRecord: A discovered website page with its derived metadata
//   - Category: The visitor-facing label assigned to a page
//   - DiscoveryResult: The outcome of one discovery run for a company
//
// Title and category derivation live here next to the types they produce,
// so that every package that builds a PageRecord derives them the same way.
//
// The models are designed to be serializable to JSON for report output and
// cache storage.
package model
