package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmaidana/toolrelay/internal/domain/tool"
	"github.com/dmaidana/toolrelay/internal/infra/provider"
)

func TestToolsHandler_List(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{
		name: "demo",
		tools: []provider.ToolInfo{
			{Name: "add", Description: "Add two numbers", InputSchema: []byte(`{"type":"object","properties":{"a":{"type":"number"}}}`)},
			{Name: "get_time", Description: "Current time", InputSchema: []byte(`{}`)},
		},
	}
	h := NewToolsHandler(newStoreWith(t, conn))

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("listed %d tools, want 2", len(resp))
	}
	if resp[0]["name"] != "add" || resp[0]["provider"] != "demo" {
		t.Errorf("first tool = %#v", resp[0])
	}

	schema, ok := resp[0]["args_schema"].(map[string]any)
	if !ok {
		t.Fatalf("args_schema is %T, want object", resp[0]["args_schema"])
	}
	if schema["type"] != "object" {
		t.Errorf("args_schema = %#v", schema)
	}
}

func TestToolsHandler_EmptyRegistryIsArray(t *testing.T) {
	t.Parallel()

	h := NewToolsHandler(tool.NewStore(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if body != "[]\n" {
		t.Errorf("empty catalog serialized as %q, want []", body)
	}
}
