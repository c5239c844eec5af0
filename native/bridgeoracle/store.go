// Package bridgeoracle implements spec.md §4.1: an asset-indirection price
// router with a hard-coded USD identity shortcut, so issued stablecoins —
// which have no market price of their own — inherit the price of the fiat
// they are pegged to.
package bridgeoracle

import (
	"orbit/core/types"
	"orbit/crypto"
)

// Store is the persistence surface BridgeOracle needs from the ledger
// frame: the governance admin address, the configured upstream oracle
// address, and the asset→asset bridge mapping.
type Store interface {
	GetAdmin() (crypto.Address, bool, error)
	PutAdmin(crypto.Address) error
	GetOracle() (crypto.Address, bool, error)
	PutOracle(crypto.Address) error
	GetBridge(asset types.Asset) (types.Asset, bool, error)
	PutBridge(from, to types.Asset) error
}
