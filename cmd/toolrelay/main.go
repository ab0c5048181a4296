// Toolrelay - web demo harness for Model Context Protocol tools.
// Entry point: flag parsing, dependency wiring, lifecycle.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmaidana/toolrelay/internal/api"
	"github.com/dmaidana/toolrelay/internal/api/handlers"
	"github.com/dmaidana/toolrelay/internal/domain/journal"
	"github.com/dmaidana/toolrelay/internal/domain/tool"
	"github.com/dmaidana/toolrelay/internal/infra/config"
	"github.com/dmaidana/toolrelay/internal/infra/eventbus"
	"github.com/dmaidana/toolrelay/internal/infra/sqlite"
	"github.com/dmaidana/toolrelay/internal/server"
	"github.com/dmaidana/toolrelay/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("toolrelay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "providers.yaml", "Path to the provider configuration file")
	addr := fs.String("addr", "", "Listen address override")
	dbPath := fs.String("db", "", "Journal database path override")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	return serve(*configPath, *addr, *dbPath)
}

func serve(configPath, addrOverride, dbOverride string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("config load failed", "path", configPath, "error", err)
		return 1
	}
	if addrOverride != "" {
		cfg.ListenAddr = addrOverride
	}
	if dbOverride != "" {
		cfg.DBPath = dbOverride
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Journal is opt-in: no db_path means no persistence and no event bus.
	var (
		db           *sql.DB
		journalStore *journal.Store
		bus          eventbus.EventBus
	)
	if cfg.DBPath != "" {
		db, err = sqlite.NewDB(cfg.DBPath)
		if err != nil {
			logger.Error("journal database open failed", "path", cfg.DBPath, "error", err)
			return 1
		}
		if err := sqlite.MigrateUp(db); err != nil {
			logger.Error("journal migration failed", "error", err)
			return 1
		}
		journalStore = journal.NewStore(db)
		bus = eventbus.New()
	}

	loader := tool.NewLoader(logger)
	store := tool.NewStore(loader.Load(ctx, cfg))
	relay := tool.NewRelay(store, bus, logger)

	if journalStore != nil {
		go journal.NewRecorder(journalStore, bus, logger).Run(ctx)
	}

	reload := func(ctx context.Context) (int, error) {
		fresh := loader.Load(ctx, cfg)
		if err := store.Replace(fresh).Close(); err != nil {
			logger.Warn("closing previous registry", "error", err)
		}
		if bus != nil {
			bus.Publish(eventbus.TopicRegistryReloaded, fresh.Len())
		}
		return fresh.Len(), nil
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Addr = cfg.ListenAddr
	srv := server.NewServer(api.Deps{
		Store:   store,
		Relay:   relay,
		Journal: journalStore,
		Reload:  handlers.ReloadFunc(reload),
		Auth:    cfg.Auth,
	}, db, srvCfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			return 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return 1
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `Toolrelay - web demo harness for MCP tools

Usage:
  toolrelay [options]

Options:
  --version        Show version information
  --help           Show this help message
  --config PATH    Provider configuration file (default: providers.yaml)
  --addr ADDR      Listen address override (default: 0.0.0.0:8080)
  --db PATH        Journal database path override

Environment:
  TOOLRELAY_ADDR          Listen address
  TOOLRELAY_DB            Journal database path
  TOOLRELAY_AUTH_SECRET   JWT signing secret for the admin surface

Examples:
  toolrelay --config providers.yaml
  toolrelay --config providers.yaml --db toolrelay.db
  TOOLRELAY_ADDR=127.0.0.1:9000 toolrelay`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
