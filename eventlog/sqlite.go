package eventlog

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite opens an embedded, pure-Go SQLite database at path — the demo
// harness's default audit store, and the one exercised by this package's
// own tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
