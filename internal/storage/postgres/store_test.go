package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/learningsteps/api/internal/errs"
	"github.com/learningsteps/api/internal/journal"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func strptr(s string) *string { return &s }

func newDraftEntry(work, struggle, intention string) journal.Entry {
	return journal.New(journal.Draft{
		Work:      strptr(work),
		Struggle:  strptr(struggle),
		Intention: strptr(intention),
	})
}

func TestStore_EntryLifecycle(t *testing.T) {
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if err := s.DeleteAllEntries(ctx); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	// create + get
	created, err := s.CreateEntry(ctx, newDraftEntry("w", "s", "i"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("unexpected created entry: %+v", created)
	}
	got, err := s.Entry(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Work != "w" || got.Struggle != "s" || got.Intention != "i" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// duplicate id violates the primary key
	if _, err := s.CreateEntry(ctx, created); !errors.Is(err, errs.ErrStorage) {
		t.Fatalf("expected ErrStorage on duplicate id, got %v", err)
	}

	// list follows insertion order
	second, err := s.CreateEntry(ctx, newDraftEntry("w2", "s2", "i2"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	list, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != created.ID || list[1].ID != second.ID {
		t.Fatalf("unexpected listing: %+v", list)
	}

	// partial update refreshes updated_at only
	upd, err := s.UpdateEntry(ctx, created.ID, journal.Update{Work: strptr("w-new")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Work != "w-new" || upd.Struggle != "s" {
		t.Fatalf("unexpected merge: %+v", upd)
	}
	if !upd.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at did not advance")
	}
	if !upd.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed")
	}

	// update on a missing id is not-found, not an upsert
	if _, err := s.UpdateEntry(ctx, "00000000-0000-0000-0000-000000000000", journal.Update{Work: strptr("x")}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// delete is idempotent at the storage level
	if err := s.DeleteEntry(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteEntry(ctx, created.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if _, err := s.Entry(ctx, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.DeleteAllEntries(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	list, err = s.Entries(ctx)
	if err != nil {
		t.Fatalf("list after delete all: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(list))
	}
}
