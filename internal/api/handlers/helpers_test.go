package handlers

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dmaidana/toolrelay/internal/domain/tool"
	"github.com/dmaidana/toolrelay/internal/infra/config"
	"github.com/dmaidana/toolrelay/internal/infra/provider"
)

// fakeConn implements tool.ProviderConn for handler tests.
type fakeConn struct {
	name   string
	tools  []provider.ToolInfo
	callFn func(ctx context.Context, toolName string, args map[string]any) (any, error)
}

func (f *fakeConn) Name() string { return f.name }

func (f *fakeConn) ListTools(ctx context.Context) ([]provider.ToolInfo, error) {
	return f.tools, nil
}

func (f *fakeConn) CallTool(ctx context.Context, toolName string, args map[string]any) (any, error) {
	return f.callFn(ctx, toolName, args)
}

func (f *fakeConn) Close() error { return nil }

// newStoreWith builds a live registry store backed by the given fake provider.
func newStoreWith(t *testing.T, conn *fakeConn) *tool.Store {
	t.Helper()
	loader := tool.NewLoaderWithDial(slog.New(slog.DiscardHandler),
		func(ctx context.Context, name string, _ config.Provider) (tool.ProviderConn, error) {
			return conn, nil
		})
	reg := loader.Load(context.Background(), config.Config{
		Providers: map[string]config.Provider{conn.name: {Command: "fake"}},
	})
	return tool.NewStore(reg)
}

func newRelayWith(t *testing.T, conn *fakeConn) *tool.Relay {
	t.Helper()
	return tool.NewRelay(newStoreWith(t, conn), nil, slog.New(slog.DiscardHandler))
}
