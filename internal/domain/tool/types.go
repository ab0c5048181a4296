// Package tool owns the registry of provider-reported tools and the relay
// that dispatches invocations to them.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dmaidana/toolrelay/internal/infra/provider"
)

// Descriptor is the static metadata for one invocable tool.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"args_schema"`
	Provider    string          `json:"provider"`
}

// ProviderConn is the subset of a provider session the registry needs.
// *provider.Conn implements it; tests substitute fakes.
type ProviderConn interface {
	Name() string
	ListTools(ctx context.Context) ([]provider.ToolInfo, error)
	CallTool(ctx context.Context, tool string, args map[string]any) (any, error)
	Close() error
}

// Outcomes recorded per invocation; values match the journal's CHECK constraint.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeFailure  = "failure"
)

// KindToolCall is the fixed invocation-kind tag carried by every envelope.
const KindToolCall = "tool_call"

// InvokedEvent is published on the event bus for every completed relay call.
type InvokedEvent struct {
	CorrelationID string
	Tool          string
	Provider      string
	Kind          string
	Outcome       string
	Error         string
	Params        map[string]any
	Duration      time.Duration
}

type entry struct {
	desc Descriptor
	conn ProviderConn
}

// Registry is the aggregated tool catalog across all providers for one load.
// It is built once by the loader and never mutated afterwards; reloads build
// a fresh Registry and swap it in through the Store.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]entry
	conns       []ProviderConn
}

func newRegistry() *Registry {
	return &Registry{byName: make(map[string]entry)}
}

// addProvider appends conn's tools in reported order, skipping names already
// registered by an earlier provider (first wins). Returns how many were added.
func (r *Registry) addProvider(conn ProviderConn, infos []provider.ToolInfo) int {
	r.conns = append(r.conns, conn)

	added := 0
	for _, info := range infos {
		if _, exists := r.byName[info.Name]; exists {
			continue
		}
		desc := Descriptor{
			Name:        info.Name,
			Description: info.Description,
			InputSchema: info.InputSchema,
			Provider:    conn.Name(),
		}
		r.descriptors = append(r.descriptors, desc)
		r.byName[info.Name] = entry{desc: desc, conn: conn}
		added++
	}
	return added
}

// Tools returns the descriptors in load order.
func (r *Registry) Tools() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.descriptors) }

// Lookup finds a tool by exact name.
func (r *Registry) Lookup(name string) (Descriptor, ProviderConn, bool) {
	e, ok := r.byName[name]
	if !ok {
		return Descriptor{}, nil, false
	}
	return e.desc, e.conn, true
}

// Close tears down every provider connection held by this registry.
func (r *Registry) Close() error {
	var errs []error
	for _, conn := range r.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Store holds the current Registry: written wholesale on (re)load, read by
// every request. Single-writer/read-many; readers never observe a partial
// registry because replacement is a pointer swap.
type Store struct {
	mu  sync.RWMutex
	reg *Registry
}

// NewStore wraps reg (nil means an empty registry).
func NewStore(reg *Registry) *Store {
	if reg == nil {
		reg = newRegistry()
	}
	return &Store{reg: reg}
}

// Get returns the current registry.
func (s *Store) Get() *Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg
}

// Replace swaps in a new registry and returns the previous one so the caller
// can close its provider connections.
func (s *Store) Replace(reg *Registry) *Registry {
	if reg == nil {
		reg = newRegistry()
	}
	s.mu.Lock()
	old := s.reg
	s.reg = reg
	s.mu.Unlock()
	return old
}
