// Package eventlog persists the events every Orbit contract emits through
// core/events.Emitter into a durable audit trail, for downstream indexers
// and operator review. It does not interpret events; it only records them.
package eventlog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the gorm-mapped row for one emitted event.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Contract  string    `gorm:"size:32;index"`
	Symbol    string    `gorm:"size:64;index"`
	EventType string    `gorm:"size:96;index"`
	Payload   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// AutoMigrate creates/updates the eventlog schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}
