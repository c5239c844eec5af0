package types

import (
	"math/big"

	"orbit/crypto"
)

// RequestType enumerates the lending-pool batch request kinds Orbit issues.
// Numeric values match the upstream pool's reserved request-type slots
// (spec.md §6) — the gaps at 2 and 4 are intentional and must not be
// renumbered, since they are request types the pool reserves for operations
// Orbit never issues (Borrow, WithdrawCollateralFromAuction equivalents).
type RequestType uint32

const (
	RequestSupply                     RequestType = 0
	RequestWithdraw                   RequestType = 1
	RequestWithdrawCollateral         RequestType = 3
	RequestRepay                      RequestType = 5
	RequestFillUserLiquidationAuction RequestType = 6
)

// Request is a single entry in the atomic batch submitted to the external
// lending pool via Submit.
type Request struct {
	Type    RequestType
	Address crypto.Address
	Amount  *big.Int
}
