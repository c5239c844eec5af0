// Package types holds the wire-level data structures shared by every Orbit
// contract: asset descriptors, price data, pool position snapshots, reserve
// data, and the lending-pool request batch.
package types

import (
	"strings"

	"orbit/crypto"
)

// AssetKind tags which variant of Asset is populated.
type AssetKind uint8

const (
	// AssetOnchain identifies an asset by its contract/account address —
	// an issued stablecoin or a collateral token.
	AssetOnchain AssetKind = iota
	// AssetOffchain identifies an asset by a fiat symbol, e.g. "USD". Only
	// the symbol "USD" carries special meaning to BridgeOracle.
	AssetOffchain
)

// USDSymbol is the canonical unit-of-account symbol recognised by
// BridgeOracle's identity shortcut.
const USDSymbol = "USD"

// Asset is the tagged variant `{ Onchain(address), Offchain(symbol) }` from
// spec.md §3.
type Asset struct {
	Kind     AssetKind
	Onchain  crypto.Address
	Offchain string
}

// NewOnchainAsset builds an Onchain asset descriptor.
func NewOnchainAsset(addr crypto.Address) Asset {
	return Asset{Kind: AssetOnchain, Onchain: addr}
}

// NewOffchainAsset builds an Offchain asset descriptor for the given symbol.
func NewOffchainAsset(symbol string) Asset {
	return Asset{Kind: AssetOffchain, Offchain: strings.TrimSpace(symbol)}
}

// USD is the canonical numeraire asset, Offchain("USD").
func USD() Asset {
	return NewOffchainAsset(USDSymbol)
}

// IsUSD reports whether this asset is exactly the Offchain("USD") canonical
// unit of account — an exact symbol match, not a case-insensitive one, per
// spec.md §4.1.
func (a Asset) IsUSD() bool {
	return a.Kind == AssetOffchain && a.Offchain == USDSymbol
}

// String renders a canonical, collision-free representation used to derive
// storage keys and map lookups.
func (a Asset) String() string {
	switch a.Kind {
	case AssetOnchain:
		return "onchain:" + a.Onchain.String()
	case AssetOffchain:
		return "offchain:" + a.Offchain
	default:
		return "invalid"
	}
}

// Equal reports whether two asset descriptors denote the same asset.
func (a Asset) Equal(other Asset) bool {
	if a.Kind != other.Kind {
		return false
	}
	if a.Kind == AssetOnchain {
		return a.Onchain.Equal(other.Onchain)
	}
	return a.Offchain == other.Offchain
}
