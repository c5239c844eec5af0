package types

import "math/big"

// ReserveConfig carries the static configuration of a pool reserve. Only the
// fields Orbit actually reads are modelled; the interest-rate curve and
// auction-creation knobs belong to the pool's own non-goal logic.
type ReserveConfig struct {
	Index uint32
}

// ReserveData carries the dynamic accounting state of a pool reserve.
type ReserveData struct {
	// BRate is the 12-decimal fixed-point scaling factor such that
	// underlying = b_token * BRate / 10^12 (spec.md §3, §4.3).
	BRate *big.Int
}

// Reserve bundles a reserve's configuration and live data, as returned by
// the external pool's get_reserve call.
type Reserve struct {
	Config ReserveConfig
	Data   ReserveData
}

// ReserveMetadata is the write-side configuration accepted by the external
// pool's queue_set_reserve/set_reserve pair, forwarded verbatim by the admin
// façade's set_reserve passthrough. Values are 7-decimal fixed-point
// fractions except Decimals/Index.
type ReserveMetadata struct {
	Decimals   uint32
	CFactor    uint32
	LFactor    uint32
	Util       uint32
	MaxUtil    uint32
	RBase      uint32
	ROne       uint32
	RTwo       uint32
	RThree     uint32
	Reactivity uint32
	Index      uint32
}

// ReserveEmissionMetadata configures one reserve's share of a pool's
// emissions, forwarded verbatim by the admin façade's
// set_emissions_config passthrough.
type ReserveEmissionMetadata struct {
	ResIndex uint32
	ResType  uint32
	Share    uint32
}

// Auction is the external pool's liquidation-opportunity record. Orbit only
// consumes its identifier and lot/percentage semantics via
// FillUserLiquidationAuction; the auction's creation and pricing curve are
// the pool's own non-goal logic (spec.md §1).
type Auction struct {
	ID               string
	Borrower         string
	LotAsset         string
	LotAmount        *big.Int
	DebtAsset        string
	DebtAmount       *big.Int
	PercentAvailable uint32
}
