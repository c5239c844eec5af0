package eventlog

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orbit/core/events"
)

// Sink persists every event it receives as a Record, implementing
// events.Emitter. Emit cannot return an error — a write failure is logged
// and otherwise swallowed, matching the audit trail's role as a
// best-effort downstream consumer rather than a consensus-critical path.
type Sink struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSink wraps db, migrating the eventlog schema if it is not already
// present. logger may be nil, in which case write failures are discarded.
func NewSink(db *gorm.DB, logger *slog.Logger) (*Sink, error) {
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return &Sink{db: db, logger: logger}, nil
}

// Emit implements events.Emitter.
func (s *Sink) Emit(ev events.Event) {
	contract, symbol := ev.Topic()
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logError("eventlog: marshal failed", err)
		return
	}
	record := Record{
		ID:        uuid.New(),
		Contract:  contract,
		Symbol:    symbol,
		EventType: ev.EventType(),
		Payload:   string(payload),
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logError("eventlog: write failed", err)
	}
}

func (s *Sink) logError(msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, slog.String("error", err.Error()))
}
