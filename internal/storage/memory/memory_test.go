package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learningsteps/api/internal/errs"
	"github.com/learningsteps/api/internal/journal"
)

func strptr(s string) *string { return &s }

func seedEntry(t *testing.T, s *Store, work string) journal.Entry {
	t.Helper()
	e := journal.New(journal.Draft{Work: strptr(work), Struggle: strptr("s"), Intention: strptr("i")})
	created, err := s.CreateEntry(context.Background(), e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestStore_CreateAndGet(t *testing.T) {
	s := New()
	e := seedEntry(t, s, "w")

	got, err := s.Entry(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != e {
		t.Fatalf("round trip mismatch: %+v != %+v", got, e)
	}

	if _, err := s.Entry(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	s := New()
	e := seedEntry(t, s, "w")
	if _, err := s.CreateEntry(context.Background(), e); !errors.Is(err, errs.ErrStorage) {
		t.Fatalf("expected ErrStorage on duplicate id, got %v", err)
	}
}

func TestStore_ListInsertionOrder(t *testing.T) {
	s := New()
	first := seedEntry(t, s, "first")
	second := seedEntry(t, s, "second")
	third := seedEntry(t, s, "third")

	list, err := s.Entries(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID || list[2].ID != third.ID {
		t.Fatalf("listing not in insertion order: %+v", list)
	}
}

func TestStore_UpdateMergesAndRefreshes(t *testing.T) {
	s := New()
	e := seedEntry(t, s, "old")

	time.Sleep(2 * time.Millisecond)
	updated, err := s.UpdateEntry(context.Background(), e.ID, journal.Update{Work: strptr("new")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Work != "new" || updated.Struggle != e.Struggle || updated.Intention != e.Intention {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("created_at changed")
	}
	if !updated.UpdatedAt.After(e.UpdatedAt) {
		t.Fatalf("updated_at did not advance")
	}

	if _, err := s.UpdateEntry(context.Background(), "missing", journal.Update{Work: strptr("x")}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DeleteSemantics(t *testing.T) {
	s := New()
	e := seedEntry(t, s, "w")

	if err := s.DeleteEntry(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// deleting again is a no-op
	if err := s.DeleteEntry(context.Background(), e.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if _, err := s.Entry(context.Background(), e.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_DeleteAll(t *testing.T) {
	s := New()
	seedEntry(t, s, "a")
	seedEntry(t, s, "b")

	if err := s.DeleteAllEntries(context.Background()); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	list, err := s.Entries(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(list))
	}
}
