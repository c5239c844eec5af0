package pegkeeper

import (
	"errors"

	"orbit/crypto"
	"orbit/storage"
)

// frame is the minimal key-value surface FrameStore needs; *ledger.Frame
// satisfies it without pegkeeper needing to import the ledger package.
type frame interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Put(key, value []byte)
	Delete(key []byte)
}

// FrameStore implements Store on top of a ledger frame.
type FrameStore struct {
	f frame
}

// NewFrameStore wraps f as a PegKeeper Store.
func NewFrameStore(f frame) *FrameStore { return &FrameStore{f: f} }

func (s *FrameStore) GetAdmin() (crypto.Address, bool, error) {
	return s.getAddr(storage.AdminKey())
}

func (s *FrameStore) PutAdmin(addr crypto.Address) error {
	s.f.Put(storage.AdminKey(), storage.EncodeAddress(addr))
	return nil
}

func (s *FrameStore) GetTreasury() (crypto.Address, bool, error) {
	return s.getAddr(storage.TreasuryKey())
}

func (s *FrameStore) PutTreasury(addr crypto.Address) error {
	s.f.Put(storage.TreasuryKey(), storage.EncodeAddress(addr))
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
