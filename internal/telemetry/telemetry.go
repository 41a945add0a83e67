// Package telemetry records operational events emitted by the registry and
// dashboard, persisted through a pluggable event store.
package telemetry

import (
	"context"
	"time"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event is one operational telemetry record.
type Event struct {
	// Timestamp is when the event occurred. Zero means "now".
	Timestamp time.Time
	// Severity is the event severity level.
	Severity Severity
	// Source names the component that emitted the event.
	Source string
	// Kind is a stable machine-readable event name.
	Kind string
	// Message is a human-readable description.
	Message string
}

// EventStore persists telemetry events.
type EventStore interface {
	AppendEvent(ctx context.Context, evt Event) error
}

// Emitter records operational telemetry events.
type Emitter struct {
	store EventStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store EventStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	if evt.Severity == "" {
		evt.Severity = SeverityInfo
	}
	return e.store.AppendEvent(ctx, evt)
}
