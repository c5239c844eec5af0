package treasury

import (
	"math/big"

	"orbit/crypto"
)

// memStore is a minimal in-memory Store used only by this package's tests;
// the production Store is backed by ledger.Frame (see FrameStore in frame_store.go).
type memStore struct {
	admin        crypto.Address
	hasAdmin     bool
	pegkeeper    crypto.Address
	hasPegkeeper bool
	blendPools   map[string]crypto.Address
	totalSupply  map[string]*big.Int
}

func newMemStore() *memStore {
	return &memStore{
		blendPools:  make(map[string]crypto.Address),
		totalSupply: make(map[string]*big.Int),
	}
}

func (m *memStore) GetAdmin() (crypto.Address, bool, error) { return m.admin, m.hasAdmin, nil }

func (m *memStore) PutAdmin(addr crypto.Address) error {
	m.admin = addr
	m.hasAdmin = true
	return nil
}

func (m *memStore) GetPegkeeper() (crypto.Address, bool, error) {
	return m.pegkeeper, m.hasPegkeeper, nil
}

func (m *memStore) PutPegkeeper(addr crypto.Address) error {
	m.pegkeeper = addr
	m.hasPegkeeper = true
	return nil
}

func (m *memStore) GetBlendPool(token crypto.Address) (crypto.Address, bool, error) {
	pool, ok := m.blendPools[token.String()]
	return pool, ok, nil
}

func (m *memStore) PutBlendPool(token, pool crypto.Address) error {
	m.blendPools[token.String()] = pool
	return nil
}

func (m *memStore) GetTotalSupply(token crypto.Address) (*big.Int, error) {
	v, ok := m.totalSupply[token.String()]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(v), nil
}

func (m *memStore) PutTotalSupply(token crypto.Address, amount *big.Int) error {
	m.totalSupply[token.String()] = new(big.Int).Set(amount)
	return nil
}
