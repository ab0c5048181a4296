package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReloadHandler_ReportsToolCount(t *testing.T) {
	t.Parallel()

	h := NewReloadHandler(func(ctx context.Context) (int, error) { return 7, nil })
	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rr := httptest.NewRecorder()
	h.Reload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["tools"] != 7 {
		t.Errorf("tools = %d, want 7", resp["tools"])
	}
}

func TestReloadHandler_Failure500(t *testing.T) {
	t.Parallel()

	h := NewReloadHandler(func(ctx context.Context) (int, error) {
		return 0, errors.New("providers unreachable")
	})
	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rr := httptest.NewRecorder()
	h.Reload(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=500", rr.Code)
	}
}
