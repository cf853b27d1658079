package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single journal record: free-text reflections plus the two
// timestamps the system manages. IDs are string-encoded UUIDs assigned at
// creation and immutable afterwards.
type Entry struct {
	ID        string    `json:"id"`
	Work      string    `json:"work"`
	Struggle  string    `json:"struggle"`
	Intention string    `json:"intention"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft is the creation payload. All three fields must be present in the
// request body; an empty string is allowed, a missing key is not, hence the
// pointer fields with required tags.
type Draft struct {
	Work      *string `json:"work" validate:"required"`
	Struggle  *string `json:"struggle" validate:"required"`
	Intention *string `json:"intention" validate:"required"`
}

// Update carries a partial field replacement for PATCH. Nil fields are left
// untouched; updated_at is always refreshed by the repository.
type Update struct {
	Work      *string `json:"work,omitempty"`
	Struggle  *string `json:"struggle,omitempty"`
	Intention *string `json:"intention,omitempty"`
}

// New builds a full entry from a validated draft, assigning the id and
// setting both timestamps to the same instant.
func New(d Draft) Entry {
	now := time.Now().UTC()
	e := Entry{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d.Work != nil {
		e.Work = *d.Work
	}
	if d.Struggle != nil {
		e.Struggle = *d.Struggle
	}
	if d.Intention != nil {
		e.Intention = *d.Intention
	}
	return e
}

// Apply merges the non-nil fields of u into e.
func (u Update) Apply(e *Entry) {
	if u.Work != nil {
		e.Work = *u.Work
	}
	if u.Struggle != nil {
		e.Struggle = *u.Struggle
	}
	if u.Intention != nil {
		e.Intention = *u.Intention
	}
}
