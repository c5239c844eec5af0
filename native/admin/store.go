package admin

import "orbit/crypto"

// Store is the admin façade's persisted state (spec.md §4.4, grounded on
// admin/src/storage.rs's ADMIN/TREASURY/BRIDGE_ORACLE instance keys).
type Store interface {
	GetAdmin() (crypto.Address, bool, error)
	PutAdmin(crypto.Address) error
	GetTreasury() (crypto.Address, bool, error)
	PutTreasury(crypto.Address) error
	GetBridgeOracle() (crypto.Address, bool, error)
	PutBridgeOracle(crypto.Address) error
}
