package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmaidana/toolrelay/internal/domain/journal"
	"github.com/dmaidana/toolrelay/internal/infra/sqlite"
)

func mustJournal(t *testing.T) *journal.Store {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return journal.NewStore(db)
}

func TestInvocationsHandler_List(t *testing.T) {
	t.Parallel()

	store := mustJournal(t)
	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"inv-1", "inv-2", "inv-3"} {
		err := store.Record(context.Background(), journal.Record{
			ID: id, Tool: "add", Provider: "math", Kind: "tool_call", Outcome: "success",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	h := NewInvocationsHandler(store)
	req := httptest.NewRequest(http.MethodGet, "/api/invocations?limit=2", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data []journal.Record `json:"data"`
		Meta map[string]int   `json:"meta"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 || resp.Meta["count"] != 2 {
		t.Fatalf("got %d rows, meta=%v, want 2", len(resp.Data), resp.Meta)
	}
	if resp.Data[0].ID != "inv-3" {
		t.Errorf("first row = %s, want newest (inv-3)", resp.Data[0].ID)
	}
}

func TestInvocationsHandler_NilStoreUnavailable(t *testing.T) {
	t.Parallel()

	h := NewInvocationsHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/invocations", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestInvocationsHandler_EmptyJournalIsArray(t *testing.T) {
	t.Parallel()

	h := NewInvocationsHandler(mustJournal(t))
	req := httptest.NewRequest(http.MethodGet, "/api/invocations", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp["data"].([]any); !ok {
		t.Errorf("data = %#v, want empty array", resp["data"])
	}
}
