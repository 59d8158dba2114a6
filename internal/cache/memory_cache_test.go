package cache

import (
	"context"
	"testing"
	"time"
)

type page struct {
	Rows []string `json:"rows"`
}

// exerciseCache runs the behaviour every Cache implementation shares
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	other := View("customers")

	t.Run("set then get", func(t *testing.T) {
		var got page
		gen, hit, err := c.Get(ctx, ViewInvoices, "q=:p=1", &got)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if hit {
			t.Fatal("Get() on empty cache reported a hit")
		}

		if err := c.Set(ctx, ViewInvoices, gen, "q=:p=1", page{Rows: []string{"a", "b"}}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		_, hit, err = c.Get(ctx, ViewInvoices, "q=:p=1", &got)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !hit {
			t.Fatal("Get() after Set() reported a miss")
		}
		if len(got.Rows) != 2 || got.Rows[0] != "a" {
			t.Errorf("Get() = %+v, want rows [a b]", got)
		}
	})

	t.Run("invalidate is scoped to view", func(t *testing.T) {
		var got page
		invGen, _, _ := c.Get(ctx, ViewInvoices, "k", &got)
		otherGen, _, _ := c.Get(ctx, other, "k", &got)
		_ = c.Set(ctx, ViewInvoices, invGen, "k", page{Rows: []string{"invoice"}})
		_ = c.Set(ctx, other, otherGen, "k", page{Rows: []string{"customer"}})

		if err := c.Invalidate(ctx, ViewInvoices); err != nil {
			t.Fatalf("Invalidate() error = %v", err)
		}

		gen, hit, _ := c.Get(ctx, ViewInvoices, "k", &got)
		if hit {
			t.Error("invoices entry survived invalidation")
		}
		if gen == invGen {
			t.Errorf("generation = %d after Invalidate(), want it bumped", gen)
		}
		if _, hit, _ := c.Get(ctx, other, "k", &got); !hit {
			t.Error("customers entry was dropped by invoices invalidation")
		}

		_ = c.Set(ctx, ViewInvoices, gen, "k", page{Rows: []string{"fresh"}})
		if _, hit, _ := c.Get(ctx, ViewInvoices, "k", &got); !hit || got.Rows[0] != "fresh" {
			t.Errorf("Get() after re-Set = %+v (hit=%v), want fresh", got, hit)
		}
	})

	t.Run("write for an invalidated generation is not served", func(t *testing.T) {
		var got page
		gen, _, _ := c.Get(ctx, ViewInvoices, "race", &got)

		if err := c.Invalidate(ctx, ViewInvoices); err != nil {
			t.Fatalf("Invalidate() error = %v", err)
		}
		if err := c.Set(ctx, ViewInvoices, gen, "race", page{Rows: []string{"stale"}}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		if _, hit, _ := c.Get(ctx, ViewInvoices, "race", &got); hit {
			t.Errorf("stale write served after invalidation: %+v", got)
		}
	})
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache("test", time.Minute))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache("test", time.Second).(*memoryCache)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, ViewInvoices, 0, "k", page{})

	now = now.Add(2 * time.Second)

	var got page
	if _, hit, _ := c.Get(ctx, ViewInvoices, "k", &got); hit {
		t.Error("expired entry reported as a hit")
	}
}
