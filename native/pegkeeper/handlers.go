package pegkeeper

import (
	"fmt"
	"math/big"

	"orbit/core/authz"
	"orbit/crypto"
)

// Handler dispatches one symbolic fn_name to the PegKeeper method it
// represents, unpacking args the way Treasury.keep_peg forwarded them. This
// is the target-language rendering of spec.md §9's design note: the
// `(fn_name, args)` dispatch form is kept as the primary keep_peg shape,
// mapped here onto a tagged variant (a registry keyed by symbol) instead of
// raw dynamic dispatch, so adding a handler is a recompile, not a new
// contract entrypoint.
//
// grant is Treasury's own sub-invocation authorization for this call,
// built from data Treasury validated independently of anything the handler
// or its args carry — the handler must verify its transfers against grant,
// never against a grant it constructs from its own locals.
type Handler func(e *Engine, caller crypto.Address, grant *authz.Verifier, args []any) (*big.Int, error)

// Handlers is the package-level registry of known keep_peg symbols,
// populated at init time. Treasury looks up fn_name here; an unknown symbol
// is rejected before any state mutation occurs.
var Handlers = map[string]Handler{
	"fl_receive": handleFlReceive,
}

func handleFlReceive(e *Engine, caller crypto.Address, grant *authz.Verifier, args []any) (*big.Int, error) {
	if len(args) != 10 {
		return nil, fmt.Errorf("pegkeeper: fl_receive expects 10 arguments, got %d", len(args))
	}
	token, ok := args[0].(crypto.Address)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 0 (token) must be an address")
	}
	amount, ok := args[1].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 1 (amount) must be *big.Int")
	}
	blendPool, ok := args[2].(crypto.Address)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 2 (blend_pool) must be an address")
	}
	auction, ok := args[3].(crypto.Address)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 3 (auction) must be an address")
	}
	collateralToken, ok := args[4].(crypto.Address)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 4 (collateral_token) must be an address")
	}
	lotAmount, ok := args[5].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 5 (lot_amount) must be *big.Int")
	}
	liqAmountPct, ok := args[6].(uint32)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 6 (liq_amount_pct) must be uint32")
	}
	amm, ok := args[7].(crypto.Address)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 7 (amm) must be an address")
	}
	minProfit, ok := args[8].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 8 (min_profit) must be *big.Int")
	}
	feeTaker, ok := args[9].(crypto.Address)
	if !ok {
		return nil, fmt.Errorf("pegkeeper: fl_receive arg 9 (fee_taker) must be an address")
	}
	return e.FlReceive(caller, grant, token, amount, blendPool, auction, collateralToken, lotAmount, liqAmountPct, amm, minProfit, feeTaker)
}
