// Package ledger is the minimal host-ledger harness SPEC_FULL.md §1.1
// introduces to stand in for Soroban's transaction frame: a Frame buffers
// every write made during one top-level operation and only flushes them to
// the underlying storage.Database on Commit; any error aborts the frame and
// discards the buffer untouched, reproducing the "all state changes revert"
// guarantee spec.md §5 describes.
package ledger

import "orbit/storage"

// Frame buffers reads-through-writes against an underlying Database for the
// duration of one operation.
type Frame struct {
	db      storage.Database
	writes  map[string][]byte
	deletes map[string]struct{}
}

func newFrame(db storage.Database) *Frame {
	return &Frame{
		db:      db,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

// Get reads key, preferring a write made earlier in this frame over the
// underlying database so a single operation observes its own writes.
func (f *Frame) Get(key []byte) ([]byte, error) {
	k := string(key)
	if _, deleted := f.deletes[k]; deleted {
		return nil, storage.ErrNotFound
	}
	if value, ok := f.writes[k]; ok {
		return append([]byte(nil), value...), nil
	}
	return f.db.Get(key)
}

// Has reports whether key is present, honoring in-flight writes/deletes.
func (f *Frame) Has(key []byte) (bool, error) {
	k := string(key)
	if _, deleted := f.deletes[k]; deleted {
		return false, nil
	}
	if _, ok := f.writes[k]; ok {
		return true, nil
	}
	return f.db.Has(key)
}

// Put buffers a write; nothing is visible outside the frame until Commit.
func (f *Frame) Put(key, value []byte) {
	k := string(key)
	delete(f.deletes, k)
	f.writes[k] = append([]byte(nil), value...)
}

// Delete buffers a deletion.
func (f *Frame) Delete(key []byte) {
	k := string(key)
	delete(f.writes, k)
	f.deletes[k] = struct{}{}
}

// commit flushes every buffered write/delete to the underlying database.
func (f *Frame) commit() error {
	for k, v := range f.writes {
		if err := f.db.Put([]byte(k), v); err != nil {
			return err
		}
	}
	for k := range f.deletes {
		if err := f.db.Delete([]byte(k)); err != nil {
			return err
		}
	}
	return nil
}
