package bridgeoracle

import (
	"errors"

	"orbit/core/types"
	"orbit/crypto"
	"orbit/storage"
)

// frame is the minimal key-value surface FrameStore needs; *ledger.Frame
// satisfies it without bridgeoracle needing to import the ledger package.
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

// NewFrameStore wraps f as a BridgeOracle Store.
func NewFrameStore(f frame) *FrameStore { return &FrameStore{f: f} }

func (s *FrameStore) GetAdmin() (crypto.Address, bool, error) {
	return s.getAddr(storage.AdminKey())
}

func (s *FrameStore) PutAdmin(addr crypto.Address) error {
	s.f.Put(storage.AdminKey(), storage.EncodeAddress(addr))
	return nil
}

func (s *FrameStore) GetOracle() (crypto.Address, bool, error) {
	return s.getAddr(storage.OracleKey())
}

func (s *FrameStore) PutOracle(addr crypto.Address) error {
	s.f.Put(storage.OracleKey(), storage.EncodeAddress(addr))
	return nil
}

func (s *FrameStore) GetBridge(asset types.Asset) (types.Asset, bool, error) {
	raw, err := s.f.Get(storage.BridgeKey(asset.String()))
	if errors.Is(err, storage.ErrNotFound) {
		return types.Asset{}, false, nil
	}
	if err != nil {
		return types.Asset{}, false, err
	}
	to, err := storage.DecodeAsset(raw)
	if err != nil {
		return types.Asset{}, false, err
	}
	return to, true, nil
}

func (s *FrameStore) PutBridge(from, to types.Asset) error {
	s.f.Put(storage.BridgeKey(from.String()), storage.EncodeAsset(to))
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
