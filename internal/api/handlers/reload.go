package handlers

import (
	"context"
	"net/http"
)

// ReloadFunc rebuilds the tool registry and reports how many tools loaded.
// The server wires it to the loader + store swap so the handler stays free of
// domain imports.
type ReloadFunc func(ctx context.Context) (int, error)

// ReloadHandler triggers a full registry rebuild.
type ReloadHandler struct {
	reload ReloadFunc
}

func NewReloadHandler(reload ReloadFunc) *ReloadHandler {
	return &ReloadHandler{reload: reload}
}

// Reload handles POST /api/reload. Providers are re-dialed from scratch and
// the new catalog replaces the old one wholesale.
func (h *ReloadHandler) Reload(w http.ResponseWriter, r *http.Request) {
	count, err := h.reload(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registry reload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"tools": count})
}
