package ledger

import (
	"sync"

	"orbit/storage"
)

// Ledger serializes all invocations through a single mutex, matching
// spec.md §5's "the host ledger serializes all invocations; there is no
// parallelism visible to contract code". Each call to Run executes in its
// own Frame and commits-or-aborts atomically.
type Ledger struct {
	mu sync.Mutex
	db storage.Database
}

// New wraps db in a serializing ledger.
func New(db storage.Database) *Ledger {
	return &Ledger{db: db}
}

// Run executes fn inside a fresh Frame. If fn returns a non-nil error the
// frame's buffered writes are discarded; otherwise they are committed to
// the underlying database. The returned error, if any, is fn's error
// unchanged, or else the commit's own error, also returned as-is (commit
// failures on a healthy in-process store are not expected).
func (l *Ledger) Run(fn func(*Frame) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	frame := newFrame(l.db)
	if err := fn(frame); err != nil {
		return err
	}
	return frame.commit()
}
