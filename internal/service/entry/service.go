package entry

import (
	"context"

	"github.com/learningsteps/api/internal/journal"
)

// Repo defines read operations needed by the service.
type Repo interface {
	Entry(ctx context.Context, id string) (journal.Entry, error)
	Entries(ctx context.Context) ([]journal.Entry, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error)
	UpdateEntry(ctx context.Context, id string, upd journal.Update) (journal.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	DeleteAllEntries(ctx context.Context) error
}

// Service exposes the journal entry operations the HTTP layer depends on.
// It is a thin delegation layer; validation happens at the boundary and
// persistence semantics live in the repository.
type Service interface {
	CreateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error)
	GetEntry(ctx context.Context, id string) (journal.Entry, error)
	ListEntries(ctx context.Context) ([]journal.Entry, error)
	UpdateEntry(ctx context.Context, id string, upd journal.Update) (journal.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	DeleteAllEntries(ctx context.Context) error
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) CreateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	return s.writer.CreateEntry(ctx, e)
}

func (s *service) GetEntry(ctx context.Context, id string) (journal.Entry, error) {
	return s.repo.Entry(ctx, id)
}

func (s *service) ListEntries(ctx context.Context) ([]journal.Entry, error) {
	return s.repo.Entries(ctx)
}

func (s *service) UpdateEntry(ctx context.Context, id string, upd journal.Update) (journal.Entry, error) {
	return s.writer.UpdateEntry(ctx, id, upd)
}

func (s *service) DeleteEntry(ctx context.Context, id string) error {
	return s.writer.DeleteEntry(ctx, id)
}

func (s *service) DeleteAllEntries(ctx context.Context) error {
	return s.writer.DeleteAllEntries(ctx)
}
