package journal

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmaidana/toolrelay/internal/domain/tool"
	"github.com/dmaidana/toolrelay/internal/infra/eventbus"
)

// Recorder drains invocation events off the bus and appends them to the
// journal. It runs outside the request path: a slow disk delays the journal,
// never the HTTP response.
type Recorder struct {
	store  *Store
	events <-chan eventbus.Event
	logger *slog.Logger
}

// NewRecorder subscribes to invocation events on bus.
func NewRecorder(store *Store, bus eventbus.EventBus, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:  store,
		events: bus.Subscribe(eventbus.TopicToolInvoked),
		logger: logger,
	}
}

// Run consumes events until ctx is canceled. Call it in its own goroutine.
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-r.events:
			invoked, ok := evt.Payload.(tool.InvokedEvent)
			if !ok {
				r.logger.Warn("unexpected payload on invocation topic",
					"topic", evt.Topic)
				continue
			}
			if err := r.store.Record(ctx, recordFromEvent(invoked)); err != nil {
				r.logger.Error("journal write failed",
					"correlation_id", invoked.CorrelationID, "error", err)
			}
		}
	}
}

func recordFromEvent(evt tool.InvokedEvent) Record {
	params, err := json.Marshal(evt.Params)
	if err != nil || len(evt.Params) == 0 {
		params = json.RawMessage("{}")
	}
	return Record{
		ID:         evt.CorrelationID,
		Tool:       evt.Tool,
		Provider:   evt.Provider,
		Kind:       evt.Kind,
		Outcome:    evt.Outcome,
		Error:      evt.Error,
		Params:     params,
		DurationMS: evt.Duration.Milliseconds(),
	}
}
