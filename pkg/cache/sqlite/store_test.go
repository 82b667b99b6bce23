package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T, now func() time.Time) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := Open(context.Background(), path, WithClock(now))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return store
}

func TestStore_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := openTestStore(t, func() time.Time { return now })

	want := []byte(`[{"name":"A","terms":[{"name":"A1"}]}]`)
	if err := store.Put(ctx, "nav:menu:en", want, 900*time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, "nav:menu:en")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	now = now.Add(900 * time.Second)
	if _, ok, err := store.Get(ctx, "nav:menu:en"); err != nil || ok {
		t.Fatalf("expected miss after ttl, got ok=%v err=%v", ok, err)
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, time.Now)

	_ = store.Put(ctx, "k", []byte("one"), time.Minute)
	_ = store.Put(ctx, "k", []byte("two"), time.Minute)

	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(got) != "two" {
		t.Fatalf("expected overwritten value, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Put(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if got, ok, _ := second.Get(ctx, "k"); !ok || string(got) != "v" {
		t.Fatalf("expected persisted entry, got %q ok=%v", got, ok)
	}
}

func TestStore_PurgeAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store := openTestStore(t, func() time.Time { return now })

	_ = store.Put(ctx, "short", []byte("x"), time.Second)
	_ = store.Put(ctx, "long", []byte("y"), time.Hour)
	_ = store.Put(ctx, "forever", []byte("z"), 0)

	now = now.Add(time.Minute)
	purged, err := store.Purge(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged row, got %d", purged)
	}

	if err := store.Delete(ctx, "long"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "long"); ok {
		t.Fatalf("expected miss after delete")
	}
	if _, ok, _ := store.Get(ctx, "forever"); !ok {
		t.Fatalf("expected zero ttl entry to survive purge")
	}
}
