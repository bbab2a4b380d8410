package cache

import (
	"context"

	"github.com/brightlist/sitescout/internal/model"
)

// Store is the result cache contract shared by the in-memory and SQLite
// implementations.
//
// Semantics: an entry is fresh while its age is below the store's TTL;
// expiry is checked lazily on read, and a stale entry behaves exactly
// like an absent one. Put unconditionally replaces the whole entry for
// the key. Implementations must be safe for concurrent use, and a
// replace must never be observable half-written.
type Store interface {
	// Get returns the cached pages for the key, whether the entry was
	// present and fresh, and any storage error. A storage error should
	// be treated as a miss by callers.
	Get(ctx context.Context, key string) ([]model.PageRecord, bool, error)

	// Put stores the pages under the key, replacing any existing entry.
	Put(ctx context.Context, key string, pages []model.PageRecord) error

	// Close releases any resources held by the store.
	Close() error
}

// Key builds the cache key for one (origin, company) pair. The separator
// cannot appear in a host, so distinct pairs can never collide.
func Key(origin, company string) string {
	return origin + "|" + company
}
