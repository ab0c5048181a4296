package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmaidana/toolrelay/internal/infra/eventbus"
	"github.com/dmaidana/toolrelay/pkg/uuid"
)

var (
	// ErrToolNotFound means the requested name matches no registry entry.
	ErrToolNotFound = errors.New("tool not found")
	// ErrInvocationFailed wraps any provider-side failure during a call.
	ErrInvocationFailed = errors.New("tool invocation failed")
)

// Relay resolves a tool name against the current registry and dispatches one
// invocation to the owning provider. It never retries, applies no timeout of
// its own (the caller's context and the MCP transport decide), and converts
// every provider failure into ErrInvocationFailed instead of letting it
// propagate to the presentation layer.
type Relay struct {
	store  *Store
	bus    eventbus.EventBus
	logger *slog.Logger
}

// NewRelay wires the relay to the registry store and the event bus.
// bus may be nil when no journal is configured.
func NewRelay(store *Store, bus eventbus.EventBus, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{store: store, bus: bus, logger: logger}
}

// Invoke coerces rawParams, looks up toolName, and relays the call.
// The returned payload is whatever the provider produced, untouched.
func (r *Relay) Invoke(ctx context.Context, toolName string, rawParams map[string]string) (any, error) {
	args := CoerceParams(rawParams)
	correlationID := uuid.NewV7().String()

	desc, conn, ok := r.store.Get().Lookup(toolName)
	if !ok {
		r.publish(InvokedEvent{
			CorrelationID: correlationID,
			Tool:          toolName,
			Kind:          KindToolCall,
			Outcome:       OutcomeNotFound,
			Params:        args,
		})
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, toolName)
	}

	r.logger.Info("invoking tool",
		"tool", toolName,
		"provider", desc.Provider,
		"correlation_id", correlationID)

	start := time.Now()
	payload, err := conn.CallTool(ctx, toolName, args)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Warn("tool invocation failed",
			"tool", toolName,
			"provider", desc.Provider,
			"correlation_id", correlationID,
			"error", err)
		r.publish(InvokedEvent{
			CorrelationID: correlationID,
			Tool:          toolName,
			Provider:      desc.Provider,
			Kind:          KindToolCall,
			Outcome:       OutcomeFailure,
			Error:         err.Error(),
			Params:        args,
			Duration:      elapsed,
		})
		return nil, fmt.Errorf("%w: %v", ErrInvocationFailed, err)
	}

	r.publish(InvokedEvent{
		CorrelationID: correlationID,
		Tool:          toolName,
		Provider:      desc.Provider,
		Kind:          KindToolCall,
		Outcome:       OutcomeSuccess,
		Params:        args,
		Duration:      elapsed,
	})
	return payload, nil
}

func (r *Relay) publish(evt InvokedEvent) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(eventbus.TopicToolInvoked, evt)
}
