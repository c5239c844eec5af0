package bridgeoracle

import (
	"orbit/core/types"
	"orbit/crypto"
)

// memStore is a minimal in-memory Store used only by this package's tests;
// the production Store is backed by ledger.Frame (see FrameStore in frame_store.go).
type memStore struct {
	admin     crypto.Address
	hasAdmin  bool
	oracle    crypto.Address
	hasOracle bool
	bridges   map[string]types.Asset
}

func newMemStore() *memStore {
	return &memStore{bridges: make(map[string]types.Asset)}
}

func (m *memStore) GetAdmin() (crypto.Address, bool, error) { return m.admin, m.hasAdmin, nil }

func (m *memStore) PutAdmin(addr crypto.Address) error {
	m.admin = addr
	m.hasAdmin = true
	return nil
}

func (m *memStore) GetOracle() (crypto.Address, bool, error) { return m.oracle, m.hasOracle, nil }

func (m *memStore) PutOracle(addr crypto.Address) error {
	m.oracle = addr
	m.hasOracle = true
	return nil
}

func (m *memStore) GetBridge(asset types.Asset) (types.Asset, bool, error) {
	to, ok := m.bridges[asset.String()]
	return to, ok, nil
}

func (m *memStore) PutBridge(from, to types.Asset) error {
	m.bridges[from.String()] = to
	return nil
}
