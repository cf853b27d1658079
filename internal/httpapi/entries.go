package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/learningsteps/api/internal/errs"
	"github.com/learningsteps/api/internal/journal"
)

// createEntry handles POST /entries. The draft has already been decoded and
// validated by the route middleware; the system assigns id and timestamps.
func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	draft, ok := r.Context().Value(ctxKeyDraft).(journal.Draft)
	if !ok {
		badRequest(w, "missing entry payload")
		return
	}
	created, err := s.svc.CreateEntry(r.Context(), journal.New(draft))
	if err != nil {
		badRequest(w, "Error creating entry: "+err.Error())
		return
	}
	toJSON(w, http.StatusOK, createEntryResponse{Detail: "Entry created successfully", Entry: created})
}

// listEntries handles GET /entries.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.ListEntries(r.Context())
	if err != nil {
		internalError(w, "failed to load entries")
		return
	}
	toJSON(w, http.StatusOK, listEntriesResponse{Entries: entries, Count: len(entries)})
}

// getEntry handles GET /entries/{id}.
func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := s.svc.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			entryNotFound(w)
		} else {
			internalError(w, "failed to load entry")
		}
		return
	}
	toJSON(w, http.StatusOK, e)
}

// updateEntry handles PATCH /entries/{id}. Partial field replacement; a
// missing id is 404, never an upsert.
func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	var upd journal.Update
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	updated, err := s.svc.UpdateEntry(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			entryNotFound(w)
		} else {
			internalError(w, "failed to update entry")
		}
		return
	}
	toJSON(w, http.StatusOK, updated)
}

// deleteEntry handles DELETE /entries/{id}. Existence is checked here rather
// than in the repository, whose delete is a no-op for missing ids.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.svc.GetEntry(r.Context(), id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			entryNotFound(w)
		} else {
			internalError(w, "failed to load entry")
		}
		return
	}
	if err := s.svc.DeleteEntry(r.Context(), id); err != nil {
		internalError(w, "failed to delete entry")
		return
	}
	toJSON(w, http.StatusOK, deleteEntryResponse{Detail: "Entry deleted successfully", EntryID: id})
}

// deleteAllEntries handles DELETE /entries.
func (s *Server) deleteAllEntries(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteAllEntries(r.Context()); err != nil {
		internalError(w, "failed to delete entries")
		return
	}
	toJSON(w, http.StatusOK, detailResponse{Detail: "All entries deleted"})
}
