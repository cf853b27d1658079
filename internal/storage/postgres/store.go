package postgres

// Package postgres provides a pgx-backed storage implementation that
// satisfies the repository and writer interfaces used by the HTTP layer.
//
// Rows carry the entry text fields as a JSON blob in the data column; the id
// and both timestamps are stored as top-level columns so the database can
// filter and order without parsing the blob. The blob echoes id, created_at
// and updated_at as well, a legacy of the original row format that existing
// consumers still expect, so it is preserved on every write.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learningsteps/api/internal/errs"
	"github.com/learningsteps/api/internal/journal"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use; the
// pool is opened once at startup and each call does its own scoped checkout.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// payload is the JSON shape stored in the data column.
type payload struct {
	ID        string    `json:"id"`
	Work      string    `json:"work"`
	Struggle  string    `json:"struggle"`
	Intention string    `json:"intention"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func encodePayload(e journal.Entry) ([]byte, error) {
	return json.Marshal(payload{
		ID:        e.ID,
		Work:      e.Work,
		Struggle:  e.Struggle,
		Intention: e.Intention,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	})
}

// toEntry builds the canonical entry shape from a row: text fields come from
// the blob, id and timestamps from the columns.
func toEntry(id string, data []byte, createdAt, updatedAt time.Time) (journal.Entry, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return journal.Entry{}, fmt.Errorf("%w: decode entry payload: %v", errs.ErrStorage, err)
	}
	return journal.Entry{
		ID:        id,
		Work:      p.Work,
		Struggle:  p.Struggle,
		Intention: p.Intention,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", errs.ErrStorage, op, err)
}

// CreateEntry inserts a new row and returns the canonical shape read back
// from it. Constraint violations and connectivity loss surface as ErrStorage.
func (s *Store) CreateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	data, err := encodePayload(e)
	if err != nil {
		return journal.Entry{}, storageErr("encode entry", err)
	}
	var (
		id                   string
		blob                 []byte
		createdAt, updatedAt time.Time
	)
	err = s.pool.QueryRow(ctx, `
        insert into entries (id, data, created_at, updated_at)
        values ($1, $2, $3, $4)
        returning id, data, created_at, updated_at
    `, e.ID, data, e.CreatedAt, e.UpdatedAt).Scan(&id, &blob, &createdAt, &updatedAt)
	if err != nil {
		return journal.Entry{}, storageErr("insert entry", err)
	}
	return toEntry(id, blob, createdAt, updatedAt)
}

// Entry fetches a single entry by id.
func (s *Store) Entry(ctx context.Context, id string) (journal.Entry, error) {
	var (
		blob                 []byte
		createdAt, updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx, `
        select data, created_at, updated_at
        from entries
        where id = $1
    `, id).Scan(&blob, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Entry{}, errs.ErrNotFound
	}
	if err != nil {
		return journal.Entry{}, storageErr("select entry", err)
	}
	return toEntry(id, blob, createdAt, updatedAt)
}

// Entries returns all entries ordered by creation time, id as tiebreak, so
// listings follow insertion order.
func (s *Store) Entries(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.pool.Query(ctx, `
        select id, data, created_at, updated_at
        from entries
        order by created_at asc, id asc
    `)
	if err != nil {
		return nil, storageErr("select entries", err)
	}
	defer rows.Close()
	out := make([]journal.Entry, 0)
	for rows.Next() {
		var (
			id                   string
			blob                 []byte
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &blob, &createdAt, &updatedAt); err != nil {
			return nil, storageErr("scan entry", err)
		}
		e, err := toEntry(id, blob, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate entries", err)
	}
	return out, nil
}

// UpdateEntry merges the partial update into the stored payload inside one
// transaction, refreshing updated_at. A missing id returns ErrNotFound; there
// is no upsert path.
func (s *Store) UpdateEntry(ctx context.Context, id string, upd journal.Update) (journal.Entry, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return journal.Entry{}, storageErr("begin update", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		blob      []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err = tx.QueryRow(ctx, `
        select data, created_at, updated_at
        from entries
        where id = $1
        for update
    `, id).Scan(&blob, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Entry{}, errs.ErrNotFound
	}
	if err != nil {
		return journal.Entry{}, storageErr("select for update", err)
	}

	e, err := toEntry(id, blob, createdAt, updatedAt)
	if err != nil {
		return journal.Entry{}, err
	}
	upd.Apply(&e)
	e.UpdatedAt = time.Now().UTC()

	data, err := encodePayload(e)
	if err != nil {
		return journal.Entry{}, storageErr("encode entry", err)
	}
	if _, err := tx.Exec(ctx, `
        update entries
        set data = $2, updated_at = $3
        where id = $1
    `, id, data, e.UpdatedAt); err != nil {
		return journal.Entry{}, storageErr("update entry", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return journal.Entry{}, storageErr("commit update", err)
	}
	return e, nil
}

// DeleteEntry removes a single row. Deleting a missing id is not an error.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `delete from entries where id = $1`, id); err != nil {
		return storageErr("delete entry", err)
	}
	return nil
}

// DeleteAllEntries removes every row.
func (s *Store) DeleteAllEntries(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `delete from entries`); err != nil {
		return storageErr("delete entries", err)
	}
	return nil
}
