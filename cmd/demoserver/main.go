// Demoserver - a small stdio MCP provider with math, time, and weather tools.
// Point a toolrelay provider entry at this binary to get a working catalog
// without any external dependencies.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmaidana/toolrelay/internal/version"
)

type mathInput struct {
	A float64 `json:"a" jsonschema:"first operand"`
	B float64 `json:"b" jsonschema:"second operand"`
}

type mathOutput struct {
	Result float64 `json:"result"`
}

type weatherInput struct {
	Location string `json:"location" jsonschema:"city name"`
}

func add(ctx context.Context, req *mcp.CallToolRequest, in mathInput) (*mcp.CallToolResult, mathOutput, error) {
	return nil, mathOutput{Result: in.A + in.B}, nil
}

func multiply(ctx context.Context, req *mcp.CallToolRequest, in mathInput) (*mcp.CallToolResult, mathOutput, error) {
	return nil, mathOutput{Result: in.A * in.B}, nil
}

func getTime(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: time.Now().Format(time.RFC1123)},
		},
	}, nil, nil
}

// Canned conditions keyed by nothing in particular; the point is a stable,
// offline-friendly response.
var conditions = []string{"sunny", "cloudy", "foggy", "rainy"}

func getWeather(ctx context.Context, req *mcp.CallToolRequest, in weatherInput) (*mcp.CallToolResult, any, error) {
	if in.Location == "" {
		return nil, nil, fmt.Errorf("location is required")
	}
	cond := conditions[len(in.Location)%len(conditions)]
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Weather in %s: %s, 18°C", in.Location, cond)},
		},
	}, nil, nil
}

func newServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "demoserver", Version: version.Version}, nil)

	mcp.AddTool(srv, &mcp.Tool{Name: "add", Description: "Add two numbers"}, add)
	mcp.AddTool(srv, &mcp.Tool{Name: "multiply", Description: "Multiply two numbers"}, multiply)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_time", Description: "Get the current server time"}, getTime)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_weather", Description: "Get the weather for a location"}, getWeather)

	return srv
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := newServer().Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
