// Package provider wraps the MCP SDK client for talking to tool providers.
// Each provider is one live MCP session: a spawned subprocess speaking stdio
// or a remote endpoint speaking streamable HTTP. All protocol framing,
// process lifecycle, and request correlation live in the SDK; this package
// only adapts sessions to what the registry and relay need.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmaidana/toolrelay/internal/infra/config"
	"github.com/dmaidana/toolrelay/internal/version"
)

// ToolInfo is the static metadata one provider reports for a tool.
type ToolInfo struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Conn is one live provider session.
type Conn struct {
	name    string
	session *mcp.ClientSession
}

// Dial connects to the provider described by cfg. For stdio transports this
// spawns the configured command as a subprocess; the SDK owns its lifecycle
// and tears it down when the session closes.
func Dial(ctx context.Context, name string, cfg config.Provider) (*Conn, error) {
	transport, err := transportFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", name, err)
	}
	return Connect(ctx, name, transport)
}

// Connect establishes an MCP session over an already-built transport.
// Split from Dial so tests can supply in-memory transports.
func Connect(ctx context.Context, name string, transport mcp.Transport) (*Conn, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "toolrelay",
		Version: version.Version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("provider %q: connect: %w", name, err)
	}

	return &Conn{name: name, session: session}, nil
}

func transportFor(cfg config.Provider) (mcp.Transport, error) {
	switch cfg.Transport {
	case "", config.TransportStdio:
		cmd := exec.Command(cfg.Command, cfg.Args...)
		cmd.Env = os.Environ()
		for k, v := range cfg.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
		return &mcp.CommandTransport{Command: cmd}, nil
	case config.TransportStreamableHTTP:
		return &mcp.StreamableClientTransport{Endpoint: cfg.URL}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// Name returns the provider id this connection was configured under.
func (c *Conn) Name() string { return c.name }

// ListTools fetches every tool the provider exposes, following pagination.
func (c *Conn) ListTools(ctx context.Context) ([]ToolInfo, error) {
	var (
		infos  []ToolInfo
		cursor string
	)
	for {
		res, err := c.session.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, fmt.Errorf("provider %q: list tools: %w", c.name, err)
		}
		for _, t := range res.Tools {
			schema := json.RawMessage(`{}`)
			if t.InputSchema != nil {
				if raw, marshalErr := json.Marshal(t.InputSchema); marshalErr == nil {
					schema = raw
				}
			}
			infos = append(infos, ToolInfo{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: schema,
			})
		}
		if res.NextCursor == "" {
			return infos, nil
		}
		cursor = res.NextCursor
	}
}

// CallTool invokes one tool and returns its payload: the structured content
// when the provider sends one, otherwise the text content (a single item as
// a plain string, several as a list). A result flagged isError becomes an
// error carrying the provider's message.
func (c *Conn) CallTool(ctx context.Context, tool string, args map[string]any) (any, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("provider %q: call %q: %w", c.name, tool, err)
	}
	if res.IsError {
		return nil, fmt.Errorf("provider %q: tool %q failed: %s", c.name, tool, textOf(res))
	}
	if res.StructuredContent != nil {
		return res.StructuredContent, nil
	}

	texts := textItems(res)
	if len(texts) == 1 {
		return texts[0], nil
	}
	return texts, nil
}

// Close tears down the session (and the subprocess, for stdio providers).
func (c *Conn) Close() error {
	return c.session.Close()
}

func textItems(res *mcp.CallToolResult) []string {
	var texts []string
	for _, item := range res.Content {
		if t, ok := item.(*mcp.TextContent); ok {
			texts = append(texts, t.Text)
		}
	}
	return texts
}

func textOf(res *mcp.CallToolResult) string {
	return strings.Join(textItems(res), "\n")
}
