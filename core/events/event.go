// Package events carries the structured state-change notifications emitted
// by Treasury, PegKeeper, and BridgeOracle, matching the two-topic shape
// spec.md §6 describes: ("Treasury"|"Pegkeeper"|"BridgeOracle", <symbol>)
// plus a payload tuple matching the call arguments.
package events

import "github.com/google/uuid"

// Event is a structured state change emitted by a contract.
type Event interface {
	// Topic returns the two-element topic tuple: the contract name and the
	// operation symbol.
	Topic() (contract string, symbol string)
	// EventType is a dotted identifier convenient for log/metric labels,
	// e.g. "treasury.keep_peg".
	EventType() string
}

// Emitter broadcasts events to downstream subscribers (the event-log audit
// sink, the websocket feed in cmd/orbitd, or tests asserting on emitted
// events).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter discards every event. Used by engines constructed without an
// explicit emitter (tests, or components that do not care about the audit
// trail).
type NoopEmitter struct{}

// Emit implements Emitter.
func (NoopEmitter) Emit(Event) {}

// Envelope wraps an Event with a correlation ID and is what cmd/orbitd's
// websocket feed serialises. The eventlog sink stores the bare event under
// its own row ID instead.
type Envelope struct {
	ID    string `json:"id"`
	Event Event  `json:"event"`
}

// NewEnvelope stamps an event with a fresh correlation ID.
func NewEnvelope(ev Event) Envelope {
	return Envelope{ID: uuid.NewString(), Event: ev}
}

// Recorder is an Emitter that retains every event it was given, in order.
// Used by tests asserting on the exact sequence of events a call produced.
type Recorder struct {
	Events []Event
}

// Emit implements Emitter.
func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Multi fans a single Emit out to several emitters — used to wire both the
// audit sink and the websocket feed to the same engines.
type Multi struct {
	Emitters []Emitter
}

// Emit implements Emitter.
func (m Multi) Emit(ev Event) {
	for _, e := range m.Emitters {
		if e != nil {
			e.Emit(ev)
		}
	}
}
