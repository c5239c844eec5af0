package types

import "math/big"

// Position is the read-only snapshot returned by the external lending
// pool's get_positions call — spec.md §3 "Position snapshot".
type Position struct {
	Collateral  map[string]*big.Int
	Liabilities map[string]*big.Int
	Supply      map[string]*big.Int
}

// NewPosition returns an empty, fully-initialised Position so callers never
// need to nil-check the three maps.
func NewPosition() *Position {
	return &Position{
		Collateral:  make(map[string]*big.Int),
		Liabilities: make(map[string]*big.Int),
		Supply:      make(map[string]*big.Int),
	}
}

// IsClosed reports whether the position carries no remaining liabilities and
// no remaining collateral — the post-liquidation check PegKeeper performs
// before proceeding to the swap leg (spec.md §4.2 step 3).
func (p *Position) IsClosed() bool {
	if p == nil {
		return true
	}
	for _, v := range p.Liabilities {
		if v != nil && v.Sign() != 0 {
			return false
		}
	}
	for _, v := range p.Collateral {
		if v != nil && v.Sign() != 0 {
			return false
		}
	}
	return true
}
