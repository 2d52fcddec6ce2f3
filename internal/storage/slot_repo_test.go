package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SlotRepo {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSlotRepo(db)
}

func TestSlotRepoMissingKey(t *testing.T) {
	repo := newTestRepo(t)
	v, ok, err := repo.Get(context.Background(), "passport")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("Get(missing)=(%q,%v), want (\"\",false)", v, ok)
	}
}

func TestSlotRepoPutOverwriteDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	if err := repo.Put(ctx, "passport", `{"xp":10}`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, "passport", `{"xp":20}`); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	s, err := repo.Lookup(ctx, "passport")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s == nil || s.Value != `{"xp":20}` {
		t.Fatalf("Lookup=%+v, want overwritten value", s)
	}
	if !s.UpdatedAt.Equal(fixed) {
		t.Fatalf("UpdatedAt=%v, want %v", s.UpdatedAt, fixed)
	}

	if err := repo.Delete(ctx, "passport"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "passport"); ok {
		t.Fatalf("key still present after Delete")
	}
	if err := repo.Delete(ctx, "passport"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "again.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := NewSlotRepo(db).Put(ctx, "k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_ = db.Close()

	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()
	v, ok, err := NewSlotRepo(db).Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get after reopen=(%q,%v,%v)", v, ok, err)
	}
}
