// Package cache stores rendered read-model views so repeated listing
// requests skip the database until a mutation invalidates them.
//
// Each view has a generation counter. Get reports the generation it read
// against and Set writes under that same generation, so a value computed
// before an invalidation can never land in the newer generation. Invalidating
// a view bumps the counter, which orphans every entry of that view at once.
// Orphans expire through the TTL.
package cache

import (
	"context"
	"fmt"
)

// View names a family of cached entries that are invalidated together
type View string

// ViewInvoices is the paginated, filtered invoices listing
const ViewInvoices View = "invoices"

// Cache defines the interface for view caching
type Cache interface {
	// Get decodes the entry for key into dest. It reports false on a miss,
	// along with the generation the lookup used.
	Get(ctx context.Context, view View, key string, dest any) (generation int64, hit bool, err error)

	// Set stores value for key under generation. A write for a generation
	// that has since been invalidated is never visible to later reads.
	Set(ctx context.Context, view View, generation int64, key string, value any) error

	// Invalidate drops every entry of view
	Invalidate(ctx context.Context, view View) error

	// Health checks if the cache backend is reachable
	Health(ctx context.Context) error

	// Close releases the backend connection
	Close() error
}

func generationKey(prefix string, view View) string {
	return fmt.Sprintf("%s:%s:gen", prefix, view)
}

func entryKey(prefix string, view View, generation int64, key string) string {
	return fmt.Sprintf("%s:%s:%d:%s", prefix, view, generation, key)
}
