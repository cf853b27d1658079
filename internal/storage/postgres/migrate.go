package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/learningsteps/api/internal/storage/postgres/migrations"
)

// Migrate applies the embedded schema migrations. goose needs a database/sql
// handle, so one is borrowed from the pool for the duration of the run.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(s.pool)
	defer func() { _ = db.Close() }()
	return goose.UpContext(ctx, db, ".")
}
