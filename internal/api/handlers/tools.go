package handlers

import (
	"net/http"

	"github.com/dmaidana/toolrelay/internal/domain/tool"
)

// ToolsHandler serves the aggregated tool catalog.
type ToolsHandler struct {
	store *tool.Store
}

func NewToolsHandler(store *tool.Store) *ToolsHandler {
	return &ToolsHandler{store: store}
}

// List writes the catalog as a JSON array. The UI consumes the descriptors
// directly, so the response is a bare array, not an envelope.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	descriptors := h.store.Get().Tools()
	if descriptors == nil {
		// An empty registry still serializes as [], never null.
		descriptors = []tool.Descriptor{}
	}
	writeJSON(w, http.StatusOK, descriptors)
}
