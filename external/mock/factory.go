package mock

import (
	"sync"

	"orbit/crypto"
)

// PoolFactory is an in-memory registry of addresses recognised as genuine
// lending-pool instances, implementing external.PoolFactory.
type PoolFactory struct {
	mu    sync.Mutex
	pools map[string]bool
}

// NewPoolFactory constructs an empty factory.
func NewPoolFactory() *PoolFactory {
	return &PoolFactory{pools: make(map[string]bool)}
}

// Register marks addr as a genuine pool instance.
func (f *PoolFactory) Register(addr crypto.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pools[addr.String()] = true
}

// IsPool implements external.PoolFactory.
func (f *PoolFactory) IsPool(addr crypto.Address) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pools[addr.String()], nil
}
