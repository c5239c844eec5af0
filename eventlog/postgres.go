package eventlog

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects to a production Postgres audit database.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
