package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"orbit/core/events"
	"orbit/eventlog"
)

// eventHub implements events.Emitter by fanning every emitted event out to
// every currently connected websocket subscriber, wrapped in an
// events.Envelope so a subscriber can correlate a push against the HTTP
// response of the call that produced it.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan events.Envelope]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan events.Envelope]struct{})}
}

// Emit implements events.Emitter. Slow subscribers are dropped rather than
// allowed to block the caller whose contract call produced the event.
func (h *eventHub) Emit(ev events.Event) {
	envelope := events.NewEnvelope(ev)
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- envelope:
		default:
		}
	}
}

func (h *eventHub) subscribe() chan events.Envelope {
	ch := make(chan events.Envelope, 32)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *eventHub) unsubscribe(ch chan events.Envelope) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

// ServeHTTP upgrades the request to a websocket and streams every event
// emitted from the moment of connection onward as JSON envelopes.
func (h *eventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return
	}
	defer conn.CloseNow()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	ctx := conn.CloseRead(r.Context())
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case envelope, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			err := wsjson.Write(writeCtx, conn, envelope)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// auditLog serves the most recent rows eventlog.Sink persisted, giving
// operators a way to page back through history the websocket feed already
// dropped (eventHub only carries events forward from the moment a
// subscriber connects).
type auditLog struct {
	db *gorm.DB
}

func newAuditLog(db *gorm.DB) *auditLog { return &auditLog{db: db} }

func (a *auditLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var records []eventlog.Record
	if err := a.db.Order("created_at desc").Limit(200).Find(&records).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}
