// Package treasury implements spec.md §4.3: the custodian of issued
// stablecoin supply, originator of the in-transaction keep-peg flashloan,
// and the sole authority that burns repaid principal.
package treasury

import (
	"math/big"

	"orbit/crypto"
)

// Store is the persistence surface Treasury needs from the ledger frame.
type Store interface {
	GetAdmin() (crypto.Address, bool, error)
	PutAdmin(crypto.Address) error
	GetPegkeeper() (crypto.Address, bool, error)
	PutPegkeeper(crypto.Address) error

	// GetBlendPool/PutBlendPool implement the injective token→pool mapping:
	// PutBlendPool must only ever be called once per token (add_stablecoin
	// enforces this by checking GetBlendPool first).
	GetBlendPool(token crypto.Address) (crypto.Address, bool, error)
	PutBlendPool(token, pool crypto.Address) error

	GetTotalSupply(token crypto.Address) (*big.Int, error)
	PutTotalSupply(token crypto.Address, amount *big.Int) error
}
