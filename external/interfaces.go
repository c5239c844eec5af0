// Package external declares the interfaces the Orbit core consumes from its
// collaborators, per spec.md §6: the lending pool, the AMM router, the
// SEP-41-shaped token, the upstream price oracle, and the pool factory.
// None of these are implemented by the core — external/mock supplies
// reference in-memory implementations for tests and for cmd/orbitd's demo
// mode.
package external

import (
	"math/big"

	"orbit/core/types"
	"orbit/crypto"
)

// LendingPool is the external lending pool Treasury and PegKeeper drive.
// Its interest-rate model and auction-creation logic are explicitly out of
// scope (spec.md §1 Non-goals); Orbit only submits request batches and
// reads back positions/reserves.
type LendingPool interface {
	// Submit executes an atomic batch of requests on behalf of from,
	// spending spender's pre-authorized allowance, crediting/debiting to.
	Submit(from, spender, to crypto.Address, requests []types.Request) (*types.Position, error)
	GetPositions(user crypto.Address) (*types.Position, error)
	GetReserve(asset crypto.Address) (*types.Reserve, error)
}

// AMMRouter is the external constant-product AMM Orbit swaps seized
// collateral through.
type AMMRouter interface {
	SwapExactTokensForTokens(amountIn, amountOutMin *big.Int, path []crypto.Address, to crypto.Address, deadline uint64) ([]*big.Int, error)
}

// Token is the SEP-41-shaped asset interface every issued stablecoin and
// collateral token implements, plus the admin-only mint/set_admin surface
// the native mint/burn facility exposes.
type Token interface {
	Balance(owner crypto.Address) (*big.Int, error)
	Transfer(from, to crypto.Address, amount *big.Int) error
	TransferFrom(spender, from, to crypto.Address, amount *big.Int) error
	Approve(owner, spender crypto.Address, amount *big.Int, expirationLedger uint64) error
	Burn(from crypto.Address, amount *big.Int) error
	Mint(admin crypto.Address, to crypto.Address, amount *big.Int) error
	SetAdmin(caller, newAdmin crypto.Address) error
}

// UpstreamOracle is the price oracle BridgeOracle delegates to once a
// bridge mapping resolves away from the USD anchor.
type UpstreamOracle interface {
	Decimals() (uint32, error)
	LastPrice(asset types.Asset) (*types.PriceData, error)
}

// PoolFactory validates that an address is a genuine lending-pool instance
// before Treasury.add_stablecoin accepts it.
type PoolFactory interface {
	IsPool(addr crypto.Address) (bool, error)
}

// PoolAdmin is the external pool's governance surface, driven only by the
// admin façade's config passthroughs. The pool's own interest-rate curve
// and auction logic stay out of scope; Orbit only forwards the operator's
// configuration calls verbatim.
type PoolAdmin interface {
	UpdatePool(backstopTakeRate, maxPositions uint32) error
	QueueSetReserve(asset crypto.Address, metadata types.ReserveMetadata) error
	SetReserveLive(asset crypto.Address) error
	SetEmissionsConfig(metadata []types.ReserveEmissionMetadata) error
	SetStatus(status uint32) error
}
