package treasury

import (
	"errors"
	"math/big"

	"orbit/crypto"
	"orbit/storage"
)

// frame is the minimal key-value surface FrameStore needs; *ledger.Frame
// satisfies it without treasury needing to import the ledger package
// (avoiding a storage↔ledger↔native import cycle).
type frame interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Put(key, value []byte)
	Delete(key []byte)
}

// FrameStore implements Store on top of a ledger frame, namespacing every
// key through storage's tagged-key constructors (spec.md §6).
type FrameStore struct {
	f frame
}

// NewFrameStore wraps f as a Treasury Store.
func NewFrameStore(f frame) *FrameStore { return &FrameStore{f: f} }

func (s *FrameStore) GetAdmin() (crypto.Address, bool, error) {
	return s.getAddr(storage.AdminKey())
}

func (s *FrameStore) PutAdmin(addr crypto.Address) error {
	s.f.Put(storage.AdminKey(), storage.EncodeAddress(addr))
	return nil
}

func (s *FrameStore) GetPegkeeper() (crypto.Address, bool, error) {
	return s.getAddr(storage.PegkeeperKey())
}

func (s *FrameStore) PutPegkeeper(addr crypto.Address) error {
	s.f.Put(storage.PegkeeperKey(), storage.EncodeAddress(addr))
	return nil
}

func (s *FrameStore) GetBlendPool(token crypto.Address) (crypto.Address, bool, error) {
	return s.getAddr(storage.BlendPoolKey(token))
}

func (s *FrameStore) PutBlendPool(token, pool crypto.Address) error {
	s.f.Put(storage.BlendPoolKey(token), storage.EncodeAddress(pool))
	return nil
}

func (s *FrameStore) GetTotalSupply(token crypto.Address) (*big.Int, error) {
	raw, err := s.f.Get(storage.TotalSupplyKey(token))
	if errors.Is(err, storage.ErrNotFound) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	return storage.DecodeBigInt(raw)
}

func (s *FrameStore) PutTotalSupply(token crypto.Address, amount *big.Int) error {
	s.f.Put(storage.TotalSupplyKey(token), storage.EncodeBigInt(amount))
	return nil
}

func (s *FrameStore) getAddr(key []byte) (crypto.Address, bool, error) {
	raw, err := s.f.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return crypto.Address{}, false, nil
	}
	if err != nil {
		return crypto.Address{}, false, err
	}
	addr, err := storage.DecodeAddress(raw)
	if err != nil {
		return crypto.Address{}, false, err
	}
	return addr, true, nil
}
