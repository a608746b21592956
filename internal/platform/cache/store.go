package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/platform/logging"
	"github.com/matchboard/matchboard/internal/platform/resilience"
)

// Store is a file-backed cache of raw JSON payloads. Entries never expire
// on disk; freshness is judged at read time against the TTL the caller
// supplies, so the same entry can serve callers with different budgets.
//
// Every I/O failure degrades to a cache miss. A cache that errors is a
// cache that is cold, nothing more.
type Store struct {
	dir    string
	logger *logging.Logger
	flight resilience.Group[[]byte]
	now    func() time.Time
}

type envelope struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// EntryInfo describes one cached entry for the introspection endpoint.
type EntryInfo struct {
	Key       string        `json:"key"`
	Age       time.Duration `json:"-"`
	AgeSecs   int64         `json:"age_seconds"`
	SizeBytes int64         `json:"size_bytes"`
}

func NewStore(dir string, logger *logging.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("cache dir is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Key flattens cache key parts into one filename-safe identifier.
func Key(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		cleaned = append(cleaned, sanitize(part))
	}
	return strings.Join(cleaned, ":")
}

// Get returns the cached payload when it exists and is younger than ttl.
func (s *Store) Get(_ context.Context, key string, ttl time.Duration) ([]byte, bool) {
	if key == "" || ttl <= 0 {
		return nil, false
	}

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	var e envelope
	if err := sonic.Unmarshal(raw, &e); err != nil {
		// Corrupt entry; drop it so the next Put starts clean.
		_ = os.Remove(s.path(key))
		return nil, false
	}
	if s.now().Sub(e.FetchedAt) >= ttl {
		return nil, false
	}
	return e.Payload, true
}

// Put stores a payload best-effort. Failures are logged and swallowed so
// a read-only disk degrades the service to uncached, not broken.
func (s *Store) Put(ctx context.Context, key string, payload []byte) {
	if key == "" || len(payload) == 0 {
		return
	}

	raw, err := sonic.Marshal(envelope{
		Key:       key,
		Payload:   json.RawMessage(payload),
		FetchedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}

	// Write-then-rename so concurrent writers race whole entries, never
	// partial files. Last writer wins.
	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		return
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(raw)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpName, s.path(key))
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", writeErr)
	}
}

// GetOrLoad returns the fresh cached payload or runs loader once for all
// concurrent callers of the same key, caching its result.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if payload, ok := s.Get(ctx, key, ttl); ok {
		return payload, nil
	}

	payload, err, _ := s.flight.Do(key, func() ([]byte, error) {
		if payload, ok := s.Get(ctx, key, ttl); ok {
			return payload, nil
		}
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Put(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Delete removes one entry.
func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	_ = os.Remove(s.path(key))
}

// Clear deletes entries whose key contains pattern; an empty pattern
// clears everything. Returns the number of removed entries.
func (s *Store) Clear(_ context.Context, pattern string) int {
	pattern = sanitize(strings.ToLower(strings.TrimSpace(pattern)))
	removed := 0
	for _, name := range s.entryFiles() {
		key := strings.TrimSuffix(name, ".json")
		if pattern != "" && !strings.Contains(key, pattern) {
			continue
		}
		if os.Remove(filepath.Join(s.dir, name)) == nil {
			removed++
		}
	}
	return removed
}

// Info lists cached entries with their ages, oldest first.
func (s *Store) Info(_ context.Context) []EntryInfo {
	now := s.now()
	out := make([]EntryInfo, 0, 16)
	for _, name := range s.entryFiles() {
		path := filepath.Join(s.dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var e envelope
		if err := sonic.Unmarshal(raw, &e); err != nil {
			continue
		}
		age := now.Sub(e.FetchedAt)
		key := e.Key
		if key == "" {
			key = strings.TrimSuffix(name, ".json")
		}
		out = append(out, EntryInfo{
			Key:       key,
			Age:       age,
			AgeSecs:   int64(age.Seconds()),
			SizeBytes: int64(len(raw)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Age != out[j].Age {
			return out[i].Age > out[j].Age
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func (s *Store) entryFiles() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		out = append(out, entry.Name())
	}
	sort.Strings(out)
	return out
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key)+".json")
}

func sanitize(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_', r == ':':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
