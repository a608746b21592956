package prefs

import (
	"context"
	"errors"
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
	store.now = func() time.Time {
		return time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	}
	return store
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "viewer-1", Profile{
		SelectedSports: []string{"nba", "cricket"},
		Favorites:      []string{"Boston Celtics"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not stamped: %+v", saved)
	}

	loaded, err := store.Load(ctx, "viewer-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.SelectedSports) != 2 || loaded.SelectedSports[1] != "cricket" {
		t.Fatalf("unexpected sports %v", loaded.SelectedSports)
	}
	if len(loaded.Favorites) != 1 || loaded.Favorites[0] != "Boston Celtics" {
		t.Fatalf("unexpected favorites %v", loaded.Favorites)
	}
	if !loaded.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created_at changed on load")
	}
}

func TestStore_LoadMissingProfile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.Load(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_UpdateCreatesFromDefault(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	updated, err := store.Update(ctx, "viewer-2", func(p *Profile) {
		p.Favorites = append(p.Favorites, "Miami Heat")
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.SelectedSports) == 0 {
		t.Fatalf("default sports missing: %+v", updated)
	}
	if len(updated.Favorites) != 1 || updated.Favorites[0] != "Miami Heat" {
		t.Fatalf("unexpected favorites %v", updated.Favorites)
	}

	loaded, err := store.Load(ctx, "viewer-2")
	if err != nil {
		t.Fatalf("load after update: %v", err)
	}
	if len(loaded.Favorites) != 1 {
		t.Fatalf("update not persisted: %+v", loaded)
	}
}

func TestStore_SaveKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "viewer-3", Profile{})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	store.now = func() time.Time {
		return time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	}
	second, err := store.Save(ctx, "viewer-3", Profile{Favorites: []string{"India"}})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at must survive re-save: %v vs %v", second.CreatedAt, first.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updated_at must advance: %v vs %v", second.UpdatedAt, first.UpdatedAt)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, "viewer-4", Profile{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "viewer-4"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "viewer-4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "viewer-4"); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
}

func TestStore_RejectsEmptyProfileID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.Load(context.Background(), "  ../  "); err == nil {
		t.Fatalf("expected error for unusable profile id")
	}
}
