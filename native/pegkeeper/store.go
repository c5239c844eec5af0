// Package pegkeeper implements spec.md §4.2: the counter-party that receives
// Treasury's flashloaned principal, drives an external lending pool and AMM
// router through a liquidate→withdraw→swap sequence, enforces a profit
// floor, and returns exactly the borrowed principal.
package pegkeeper

import "orbit/crypto"

// Store is the persistence surface PegKeeper needs from the ledger frame:
// the governance admin and the single Treasury address authorized to invoke
// FlReceive.
type Store interface {
	GetAdmin() (crypto.Address, bool, error)
	PutAdmin(crypto.Address) error
	GetTreasury() (crypto.Address, bool, error)
	PutTreasury(crypto.Address) error
}
