package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchboard/matchboard/internal/platform/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	key := Key("nba", "upcoming")

	if _, ok := store.Get(ctx, key, time.Minute); ok {
		t.Fatalf("expected miss on empty store")
	}

	store.Put(ctx, key, []byte(`{"events":[{"id":"401"}]}`))
	payload, ok := store.Get(ctx, key, time.Minute)
	if !ok {
		t.Fatalf("expected hit after put")
	}
	if string(payload) != `{"events":[{"id":"401"}]}` {
		t.Fatalf("payload mangled: %s", payload)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	key := Key("nhl", "live")
	store.Put(ctx, key, []byte(`{"events":[]}`))

	now = now.Add(29 * time.Second)
	if _, ok := store.Get(ctx, key, 30*time.Second); !ok {
		t.Fatalf("expected hit just inside ttl")
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(ctx, key, 30*time.Second); ok {
		t.Fatalf("expected miss once age reaches ttl")
	}

	// A longer budget still sees the same entry.
	if _, ok := store.Get(ctx, key, time.Hour); !ok {
		t.Fatalf("expected hit under a longer ttl")
	}
}

func TestStore_CorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	key := Key("mlb", "recent")
	if err := os.WriteFile(filepath.Join(dir, key+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, ok := store.Get(ctx, key, time.Hour); ok {
		t.Fatalf("expected corrupt entry to read as miss")
	}
	if _, err := os.Stat(filepath.Join(dir, key+".json")); !os.IsNotExist(err) {
		t.Fatalf("expected corrupt entry to be removed, err=%v", err)
	}
}

func TestStore_GetOrLoadDeduplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	key := Key("cricket", "upcoming")

	var loads int32
	loader := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(10 * time.Millisecond)
		return []byte(`{"events":[]}`), nil
	}

	const workers = 10
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if _, err := store.GetOrLoad(ctx, key, time.Minute, loader); err != nil {
				t.Errorf("get or load: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected one upstream load, got %d", got)
	}

	// A second call inside the ttl serves from disk.
	if _, err := store.GetOrLoad(ctx, key, time.Minute, loader); err != nil {
		t.Fatalf("get or load after warm: %v", err)
	}
	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected cached read, loads=%d", got)
	}
}

func TestStore_GetOrLoadErrorLeavesCacheEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	key := Key("golf", "upcoming")

	wantErr := errors.New("upstream down")
	_, err := store.GetOrLoad(ctx, key, time.Minute, func(context.Context) ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(ctx, key, time.Hour); ok {
		t.Fatalf("failed load must not populate the cache")
	}
}

func TestStore_InfoAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Put(ctx, Key("nba", "upcoming"), []byte(`{"a":1}`))
	now = now.Add(2 * time.Minute)
	store.Put(ctx, Key("nba", "standings"), []byte(`{"b":2}`))
	store.Put(ctx, Key("nfl", "upcoming"), []byte(`{"c":3}`))
	now = now.Add(time.Minute)

	info := store.Info(ctx)
	if len(info) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(info))
	}
	if info[0].Key != "nba:upcoming" || info[0].AgeSecs != 180 {
		t.Fatalf("expected oldest first, got %+v", info[0])
	}

	if removed := store.Clear(ctx, "nba"); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if removed := store.Clear(ctx, ""); removed != 1 {
		t.Fatalf("expected remaining entry cleared, got %d", removed)
	}
	if info := store.Info(ctx); len(info) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(info))
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if got := Key("NBA", " upcoming ", "q=Boston Celtics"); got != "nba:upcoming:q_boston_celtics" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := Key("", "live"); got != "live" {
		t.Fatalf("empty parts must be dropped, got %q", got)
	}
}
