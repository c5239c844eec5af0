package admin

import "orbit/crypto"

type memStore struct {
	admin           crypto.Address
	hasAdmin        bool
	treasury        crypto.Address
	hasTreasury     bool
	bridgeOracle    crypto.Address
	hasBridgeOracle bool
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) GetAdmin() (crypto.Address, bool, error) { return m.admin, m.hasAdmin, nil }
func (m *memStore) PutAdmin(a crypto.Address) error {
	m.admin = a
	m.hasAdmin = true
	return nil
}

func (m *memStore) GetTreasury() (crypto.Address, bool, error) { return m.treasury, m.hasTreasury, nil }
func (m *memStore) PutTreasury(a crypto.Address) error {
	m.treasury = a
	m.hasTreasury = true
	return nil
}

func (m *memStore) GetBridgeOracle() (crypto.Address, bool, error) {
	return m.bridgeOracle, m.hasBridgeOracle, nil
}
func (m *memStore) PutBridgeOracle(a crypto.Address) error {
	m.bridgeOracle = a
	m.hasBridgeOracle = true
	return nil
}
