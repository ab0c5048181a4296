package server

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dmaidana/toolrelay/internal/api"
	"github.com/dmaidana/toolrelay/internal/domain/tool"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Addr != "0.0.0.0:8080" {
		t.Fatalf("Addr = %q; want %q", cfg.Addr, "0.0.0.0:8080")
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("ReadTimeout = %v; want %v", cfg.ReadTimeout, 15*time.Second)
	}
	if cfg.WriteTimeout != 60*time.Second {
		t.Fatalf("WriteTimeout = %v; want %v", cfg.WriteTimeout, 60*time.Second)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout = %v; want %v", cfg.IdleTimeout, 60*time.Second)
	}
}

func TestNewServer_ConfiguresAddressAndHandler(t *testing.T) {
	store := tool.NewStore(nil)
	deps := api.Deps{
		Store: store,
		Relay: tool.NewRelay(store, nil, slog.New(slog.DiscardHandler)),
	}

	cfg := Config{Addr: "127.0.0.1:18080", ReadTimeout: time.Second, WriteTimeout: 2 * time.Second, IdleTimeout: 3 * time.Second}
	s := NewServer(deps, nil, cfg, slog.New(slog.DiscardHandler))

	if s == nil {
		t.Fatal("NewServer() returned nil")
	}
	if s.http == nil {
		t.Fatal("server.http should not be nil")
	}
	if s.http.Addr != "127.0.0.1:18080" {
		t.Fatalf("Addr = %q; want %q", s.http.Addr, "127.0.0.1:18080")
	}
	if s.http.Handler == nil {
		t.Fatal("Handler should not be nil")
	}
}

func TestServer_ShutdownWithoutStart(t *testing.T) {
	store := tool.NewStore(nil)
	deps := api.Deps{
		Store: store,
		Relay: tool.NewRelay(store, nil, slog.New(slog.DiscardHandler)),
	}
	s := NewServer(deps, nil, DefaultConfig(), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}
