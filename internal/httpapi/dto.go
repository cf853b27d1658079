package httpapi

import "github.com/learningsteps/api/internal/journal"

type createEntryResponse struct {
	Detail string        `json:"detail"`
	Entry  journal.Entry `json:"entry"`
}

type listEntriesResponse struct {
	Entries []journal.Entry `json:"entries"`
	Count   int             `json:"count"`
}

type deleteEntryResponse struct {
	Detail  string `json:"detail"`
	EntryID string `json:"entry_id"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type rootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
