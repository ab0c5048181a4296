package tool

import (
	"context"
	"log/slog"

	"github.com/dmaidana/toolrelay/internal/infra/config"
	"github.com/dmaidana/toolrelay/internal/infra/provider"
)

// DialFunc establishes a connection to one configured provider.
type DialFunc func(ctx context.Context, name string, cfg config.Provider) (ProviderConn, error)

// Loader connects to every configured provider and aggregates the tools they
// report into one Registry.
type Loader struct {
	dial   DialFunc
	logger *slog.Logger
}

// NewLoader returns a Loader that dials real MCP providers.
func NewLoader(logger *slog.Logger) *Loader {
	return NewLoaderWithDial(logger, func(ctx context.Context, name string, cfg config.Provider) (ProviderConn, error) {
		return provider.Dial(ctx, name, cfg)
	})
}

// NewLoaderWithDial injects the dial function; tests use it to substitute
// fake provider connections.
func NewLoaderWithDial(logger *slog.Logger, dial DialFunc) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dial: dial, logger: logger}
}

// Load connects to providers in cfg.ProviderOrder() — sorted by id, which
// makes the first-wins rule for duplicate tool names deterministic — and
// returns the aggregated registry. A provider that fails to connect or list
// is logged and skipped; the demo keeps running with whatever loaded, even
// if that is nothing.
func (l *Loader) Load(ctx context.Context, cfg config.Config) *Registry {
	reg := newRegistry()

	for _, name := range cfg.ProviderOrder() {
		conn, err := l.dial(ctx, name, cfg.Providers[name])
		if err != nil {
			l.logger.Warn("provider unavailable, skipping",
				"provider", name, "error", err)
			continue
		}

		infos, err := conn.ListTools(ctx)
		if err != nil {
			l.logger.Warn("tool listing failed, skipping provider",
				"provider", name, "error", err)
			_ = conn.Close() //nolint:errcheck
			continue
		}

		added := reg.addProvider(conn, infos)
		l.logger.Info("provider loaded",
			"provider", name, "tools", added, "reported", len(infos))
	}

	l.logger.Info("registry built", "tools", reg.Len())
	return reg
}
