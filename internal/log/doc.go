// Package log provides logging helpers for sitescout.
//
// The main type is TrimHandler, an slog.Handler wrapper that truncates
// oversized attribute values. Discovery runs log discovered URL sets and
// sitemap fetch details; without trimming, a single record can flood a
// terminal with a multi-kilobyte URL list.
package log
