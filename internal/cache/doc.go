// Package cache stores discovery results per (origin, company) key with
// a time-to-live.
//
// Two implementations of the Store interface are provided: MemoryStore
// for library embedders that keep an Engine alive, and SQLiteStore for
// the CLI, where each invocation is a fresh process. Both check expiry
// lazily on read and replace entries whole; there is no background
// eviction.
package cache
