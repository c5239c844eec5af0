package types

import "math/big"

// PriceData is the price quote returned by the upstream oracle and by
// BridgeOracle's own lastprice resolution.
type PriceData struct {
	// Price is scaled by 10^decimals, decimals shared across the system
	// (BridgeOracle.decimals() delegates to the upstream oracle verbatim).
	Price *big.Int
	// Timestamp is the ledger time the quote was produced/observed.
	Timestamp uint64
}

// Clone returns a deep copy so callers cannot mutate a cached quote's
// underlying big.Int through an alias.
func (p *PriceData) Clone() *PriceData {
	if p == nil {
		return nil
	}
	clone := &PriceData{Timestamp: p.Timestamp}
	if p.Price != nil {
		clone.Price = new(big.Int).Set(p.Price)
	}
	return clone
}
