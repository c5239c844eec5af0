package pegkeeper

import "orbit/crypto"

// memStore is a minimal in-memory Store used only by this package's tests;
// the production Store is backed by ledger.Frame (see FrameStore in frame_store.go).
type memStore struct {
	admin       crypto.Address
	hasAdmin    bool
	treasury    crypto.Address
	hasTreasury bool
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) GetAdmin() (crypto.Address, bool, error) { return m.admin, m.hasAdmin, nil }

func (m *memStore) PutAdmin(addr crypto.Address) error {
	m.admin = addr
	m.hasAdmin = true
	return nil
}

func (m *memStore) GetTreasury() (crypto.Address, bool, error) {
	return m.treasury, m.hasTreasury, nil
}

func (m *memStore) PutTreasury(addr crypto.Address) error {
	m.treasury = addr
	m.hasTreasury = true
	return nil
}
