package pegkeeper

import (
	"math/big"

	"orbit/core/authz"
	orbiterrors "orbit/core/errors"
	"orbit/core/events"
	"orbit/core/types"
	"orbit/crypto"
	nativecommon "orbit/native/common"
)

const moduleName = "pegkeeper"

// Engine implements the PegKeeper contract: a single public operation,
// FlReceive, that drives an external lending pool and AMM router through
// the liquidate→withdraw→swap sequence described in spec.md §4.2.
type Engine struct {
	self     crypto.Address
	state    Store
	pools    PoolResolver
	routers  RouterResolver
	tokens   TokenResolver
	emitter  events.Emitter
	pauses   nativecommon.PauseView
	sequence func() uint64
}

// NewEngine constructs a PegKeeper engine bound to self, the contract's own
// address — every balance check and sub-invocation authorization in
// FlReceive is relative to this address.
func NewEngine(self crypto.Address, pools PoolResolver, routers RouterResolver, tokens TokenResolver) *Engine {
	return &Engine{
		self:     self,
		pools:    pools,
		routers:  routers,
		tokens:   tokens,
		emitter:  events.NoopEmitter{},
		sequence: func() uint64 { return 0 },
	}
}

// SetState wires the engine to the ledger frame's storage view.
func (e *Engine) SetState(s Store) { e.state = s }

// SetEmitter wires event emission.
func (e *Engine) SetEmitter(em events.Emitter) {
	if em == nil {
		em = events.NoopEmitter{}
	}
	e.emitter = em
}

// SetPauses wires the module-pause guard.
func (e *Engine) SetPauses(p nativecommon.PauseView) { e.pauses = p }

// SetSequence overrides the ledger-sequence-number source used to compute
// the one-shot allowance's expiration, primarily for deterministic tests.
func (e *Engine) SetSequence(seq func() uint64) {
	if seq != nil {
		e.sequence = seq
	}
}

// Initialize sets the initial admin and Treasury address.
func (e *Engine) Initialize(admin, treasury crypto.Address) error {
	if e.state == nil {
		return errNilState
	}
	if _, ok, err := e.state.GetAdmin(); err != nil {
		return err
	} else if ok {
		return orbiterrors.ErrAlreadyInitialized
	}
	if err := e.state.PutAdmin(admin); err != nil {
		return err
	}
	if err := e.state.PutTreasury(treasury); err != nil {
		return err
	}
	e.emitter.Emit(events.Initialize{Contract: "Pegkeeper", Admin: admin})
	return nil
}

// SetTreasury rotates the address authorized to call FlReceive. Admin-gated.
func (e *Engine) SetTreasury(caller, treasury crypto.Address) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	return e.state.PutTreasury(treasury)
}

// SetAdmin rotates the governance address. Admin-gated.
func (e *Engine) SetAdmin(caller, newAdmin crypto.Address) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.PutAdmin(newAdmin); err != nil {
		return err
	}
	e.emitter.Emit(events.SetAdmin{Contract: "Pegkeeper", Admin: newAdmin})
	return nil
}

func (e *Engine) requireAdmin(caller crypto.Address) error {
	admin, ok, err := e.state.GetAdmin()
	if err != nil {
		return err
	}
	if !ok || !admin.Equal(caller) {
		return orbiterrors.ErrUnauthorized
	}
	return nil
}

var errNilState = pegkeeperErrNilState{}

type pegkeeperErrNilState struct{}

func (pegkeeperErrNilState) Error() string { return "pegkeeper: state not configured" }

// FlReceive implements spec.md §4.2's eight-step algorithm. caller must be
// the stored Treasury address; amount of token must already have been
// minted to this contract by the caller before invoking FlReceive. grant is
// Treasury's own sub-invocation authorization for the pool-transfer leg,
// built by KeepPeg from its independently-validated blend-pool mapping —
// never from this function's own locals. Returns the realized profit paid
// to feeTaker.
func (e *Engine) FlReceive(
	caller crypto.Address,
	grant *authz.Verifier,
	token crypto.Address,
	amount *big.Int,
	blendPool crypto.Address,
	auction crypto.Address,
	collateralToken crypto.Address,
	lotAmount *big.Int,
	liqAmountPct uint32,
	amm crypto.Address,
	minProfit *big.Int,
	feeTaker crypto.Address,
) (*big.Int, error) {
	if e.state == nil {
		return nil, errNilState
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return nil, err
	}
	treasury, ok, err := e.state.GetTreasury()
	if err != nil {
		return nil, err
	}
	if !ok || !treasury.Equal(caller) {
		return nil, orbiterrors.ErrUnauthorized
	}

	tokenHandle, err := e.tokens.ResolveToken(token)
	if err != nil {
		return nil, err
	}
	collateralHandle, err := e.tokens.ResolveToken(collateralToken)
	if err != nil {
		return nil, err
	}
	pool, err := e.pools.ResolvePool(blendPool)
	if err != nil {
		return nil, err
	}
	router, err := e.routers.ResolveRouter(amm)
	if err != nil {
		return nil, err
	}

	// Step 1: snapshot balances before any mutation.
	tokenBefore, err := tokenHandle.Balance(e.self)
	if err != nil {
		return nil, err
	}
	collateralBefore, err := collateralHandle.Balance(e.self)
	if err != nil {
		return nil, err
	}

	// Step 2: verify the transfer this contract is about to ask the pool to
	// pull is exactly the one Treasury authorized when it dispatched this
	// call — grant was built by KeepPeg from its own validated blend-pool
	// mapping, not from anything this function computed, so a mismatch here
	// means the call arrived through something other than Treasury's
	// checked path.
	if _, err := grant.Require(authz.Call{Contract: token, Function: "transfer", Args: []any{e.self, blendPool, amount}}); err != nil {
		return nil, err
	}

	requests := []types.Request{
		{Type: types.RequestFillUserLiquidationAuction, Address: auction, Amount: big.NewInt(int64(liqAmountPct))},
		{Type: types.RequestRepay, Address: token, Amount: amount},
		{Type: types.RequestWithdrawCollateral, Address: collateralToken, Amount: lotAmount},
	}
	position, err := pool.Submit(e.self, e.self, e.self, requests)
	if err != nil {
		return nil, err
	}

	// Step 3: the liquidation must fully clear this contract's borrow.
	if !position.IsClosed() {
		return nil, orbiterrors.ErrPositionStillOpen
	}

	// Step 4: how much freed collateral is available to swap.
	collateralAfterLiquidation, err := collateralHandle.Balance(e.self)
	if err != nil {
		return nil, err
	}
	toSwap := new(big.Int).Sub(collateralAfterLiquidation, collateralBefore)

	// Step 5: swap the freed collateral back into `token`. Treasury never
	// sees collateralToken/amm — they are handler-specific — so there is no
	// upstream grant to check this leg against. Instead the scope is
	// authorized by lotAmount, the quantity the keep_peg caller declared up
	// front in args[5], and verified against toSwap, the amount the pool
	// actually released. A pool that pays out anything other than the
	// declared lot fails this check instead of silently swapping whatever
	// balance delta resulted.
	swapGrant := authz.NewGrant(collateralToken, "transfer", e.self, amm, lotAmount)
	swapVerifier := authz.NewVerifier(swapGrant)
	if _, err := swapVerifier.Require(authz.Call{Contract: collateralToken, Function: "transfer", Args: []any{e.self, amm, toSwap}}); err != nil {
		return nil, err
	}
	if _, err := router.SwapExactTokensForTokens(toSwap, big.NewInt(0), []crypto.Address{collateralToken, token}, e.self, ^uint64(0)); err != nil {
		return nil, err
	}

	// Step 6: profit floor.
	tokenAfterSwap, err := tokenHandle.Balance(e.self)
	if err != nil {
		return nil, err
	}
	profit := new(big.Int).Sub(tokenAfterSwap, tokenBefore)
	if profit.Cmp(minProfit) < 0 {
		return nil, orbiterrors.ErrNotProfitable
	}

	// Step 7: pay the fee taker.
	if profit.Sign() > 0 {
		if err := tokenHandle.Transfer(e.self, feeTaker, profit); err != nil {
			return nil, err
		}
	}

	// Step 8: one-shot allowance authorizing Treasury's transfer_from on
	// the next sequence number.
	if err := tokenHandle.Approve(e.self, treasury, amount, e.sequence()+1); err != nil {
		return nil, err
	}

	e.emitter.Emit(events.FlReceive{
		Token:           token,
		Amount:          amount,
		BlendPool:       blendPool,
		Auction:         auction,
		CollateralToken: collateralToken,
		LotAmount:       lotAmount,
		LiqAmountPct:    liqAmountPct,
		MinProfit:       minProfit,
		FeeTaker:        feeTaker,
		RealizedProfit:  profit,
	})
	return profit, nil
}
