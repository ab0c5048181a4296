package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmaidana/toolrelay/internal/domain/tool"
)

// ExecuteHandler relays one tool invocation per request.
type ExecuteHandler struct {
	relay *tool.Relay
}

func NewExecuteHandler(relay *tool.Relay) *ExecuteHandler {
	return &ExecuteHandler{relay: relay}
}

type executeRequest struct {
	ToolName   string            `json:"tool_name"`
	Parameters map[string]string `json:"parameters"`
}

type executeResponse struct {
	Result any `json:"result"`
}

// Execute handles POST /api/execute.
// Status mapping: 400 malformed request, 404 unknown tool, 500 provider
// failure, 200 with {"result": ...} otherwise.
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ToolName == "" {
		writeError(w, http.StatusBadRequest, "tool_name is required")
		return
	}

	result, err := h.relay.Invoke(r.Context(), req.ToolName, req.Parameters)
	if err != nil {
		if errors.Is(err, tool.ErrToolNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Tool '%s' not found", req.ToolName))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{Result: result})
}
