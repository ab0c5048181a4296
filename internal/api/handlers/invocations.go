package handlers

import (
	"net/http"

	"github.com/dmaidana/toolrelay/internal/domain/journal"
)

// InvocationsHandler exposes the invocation journal, newest first.
type InvocationsHandler struct {
	journal *journal.Store
}

// NewInvocationsHandler accepts a nil store when no database is configured;
// the endpoint then reports the journal as disabled.
func NewInvocationsHandler(store *journal.Store) *InvocationsHandler {
	return &InvocationsHandler{journal: store}
}

// List handles GET /api/invocations?limit=N.
func (h *InvocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeError(w, http.StatusServiceUnavailable, "invocation journal is not configured")
		return
	}

	records, err := h.journal.ListRecent(r.Context(), parseLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list invocations")
		return
	}
	if records == nil {
		records = []journal.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": records,
		"meta": map[string]int{"count": len(records)},
	})
}
