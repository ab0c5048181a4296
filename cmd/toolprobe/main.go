// Toolprobe - command line companion for toolrelay.
// Connects to the configured providers directly (no HTTP server needed) to
// list the aggregated catalog or invoke a single tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dmaidana/toolrelay/internal/domain/tool"
	"github.com/dmaidana/toolrelay/internal/infra/config"
	"github.com/dmaidana/toolrelay/internal/version"
)

const probeTimeout = 60 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("toolprobe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "providers.yaml", "Path to the provider configuration file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}
	if *showHelp || fs.NArg() == 0 {
		printHelp(out)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store := tool.NewStore(tool.NewLoader(logger).Load(ctx, cfg))
	defer store.Replace(nil).Close() //nolint:errcheck

	switch fs.Arg(0) {
	case "list":
		return list(store, out)
	case "call":
		if fs.NArg() < 2 {
			fmt.Fprintln(out, "error: call requires a tool name") //nolint:errcheck
			return 2
		}
		return call(ctx, store, logger, fs.Arg(1), fs.Args()[2:], out)
	default:
		fmt.Fprintf(out, "error: unknown command %q\n", fs.Arg(0)) //nolint:errcheck
		return 2
	}
}

func list(store *tool.Store, out io.Writer) int {
	descriptors := store.Get().Tools()
	if len(descriptors) == 0 {
		fmt.Fprintln(out, "no tools available") //nolint:errcheck
		return 0
	}
	for _, d := range descriptors {
		fmt.Fprintf(out, "%-24s %-12s %s\n", d.Name, d.Provider, d.Description) //nolint:errcheck
	}
	return 0
}

func call(ctx context.Context, store *tool.Store, logger *slog.Logger, name string, pairs []string, out io.Writer) int {
	params, err := parseParams(pairs)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 2
	}

	relay := tool.NewRelay(store, nil, logger)
	result, err := relay.Invoke(ctx, name, params)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 1
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "%v\n", result) //nolint:errcheck
		return 0
	}
	fmt.Fprintln(out, string(encoded)) //nolint:errcheck
	return 0
}

// parseParams turns key=value arguments into the raw string map the relay
// coerces. Values keep everything after the first '='.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func printHelp(out io.Writer) {
	helpText := `Toolprobe - command line companion for toolrelay

Usage:
  toolprobe [options] list
  toolprobe [options] call <tool> [key=value ...]

Options:
  --version        Show version information
  --help           Show this help message
  --config PATH    Provider configuration file (default: providers.yaml)

Examples:
  toolprobe --config providers.yaml list
  toolprobe --config providers.yaml call add a=5 b=3
  toolprobe call get_weather location="San Francisco"`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
