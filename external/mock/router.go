package mock

import (
	"errors"
	"math/big"
	"sync"

	"orbit/crypto"
)

var (
	errNoSuchPair         = errors.New("mock: no liquidity pair for this path")
	errInsufficientOutput = errors.New("mock: output below amountOutMin")
	errDeadlineExpired    = errors.New("mock: swap deadline has passed")
)

type pairState struct {
	tokenA, tokenB     *Token
	addrA, addrB       crypto.Address
	reserveA, reserveB *big.Int
}

// Router is a constant-product (x*y=k) AMM over a set of two-leg pairs,
// the model PegKeeper's collateral-liquidation swap leg drives. Swap fees
// are fixed at construction and charged on the input leg before the
// constant-product formula runs.
type Router struct {
	mu     sync.Mutex
	pairs  map[string]*pairState
	feeBps int64
	now    func() uint64
}

// NewRouter constructs a router charging feeBps (out of 10,000) per swap.
func NewRouter(feeBps int64) *Router {
	return &Router{pairs: make(map[string]*pairState), feeBps: feeBps, now: func() uint64 { return 0 }}
}

// SetClock overrides the ledger-time source used to evaluate swap
// deadlines, primarily for deterministic tests.
func (r *Router) SetClock(now func() uint64) {
	if now != nil {
		r.now = now
	}
}

func pairKey(a, b crypto.Address) string {
	if a.String() < b.String() {
		return a.String() + ":" + b.String()
	}
	return b.String() + ":" + a.String()
}

// AddLiquidity seeds a pair's reserves directly, bypassing any real token
// transfer — this is fixture setup, not a swap leg.
func (r *Router) AddLiquidity(tokenA crypto.Address, handleA *Token, amountA *big.Int, tokenB crypto.Address, handleB *Token, amountB *big.Int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs[pairKey(tokenA, tokenB)] = &pairState{
		tokenA: handleA, tokenB: handleB,
		addrA: tokenA, addrB: tokenB,
		reserveA: new(big.Int).Set(amountA), reserveB: new(big.Int).Set(amountB),
	}
}

// SwapExactTokensForTokens implements external.AMMRouter over a single-hop
// path, applying the constant-product formula with the router's fee:
// amountOut = (amountInAfterFee * reserveOut) / (reserveIn + amountInAfterFee).
func (r *Router) SwapExactTokensForTokens(amountIn, amountOutMin *big.Int, path []crypto.Address, to crypto.Address, deadline uint64) ([]*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(path) != 2 {
		return nil, errNoSuchPair
	}
	if deadline != ^uint64(0) && r.now() > deadline {
		return nil, errDeadlineExpired
	}
	tokenIn, tokenOut := path[0], path[1]
	pair, ok := r.pairs[pairKey(tokenIn, tokenOut)]
	if !ok {
		return nil, errNoSuchPair
	}

	var reserveIn, reserveOut *big.Int
	var handleIn, handleOut *Token
	if pair.addrA.Equal(tokenIn) {
		reserveIn, reserveOut = pair.reserveA, pair.reserveB
		handleIn, handleOut = pair.tokenA, pair.tokenB
	} else {
		reserveIn, reserveOut = pair.reserveB, pair.reserveA
		handleIn, handleOut = pair.tokenB, pair.tokenA
	}

	feeAmount := new(big.Int).Mul(amountIn, big.NewInt(r.feeBps))
	feeAmount.Quo(feeAmount, big.NewInt(10_000))
	amountInAfterFee := new(big.Int).Sub(amountIn, feeAmount)

	numerator := new(big.Int).Mul(amountInAfterFee, reserveOut)
	denominator := new(big.Int).Add(reserveIn, amountInAfterFee)
	amountOut := new(big.Int).Quo(numerator, denominator)

	if amountOut.Cmp(amountOutMin) < 0 {
		return nil, errInsufficientOutput
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, errInsufficientOutput
	}

	if err := handleIn.Burn(to, amountIn); err != nil {
		return nil, err
	}
	handleOut.Credit(to, amountOut)

	reserveIn.Add(reserveIn, amountIn)
	reserveOut.Sub(reserveOut, amountOut)

	return []*big.Int{amountIn, amountOut}, nil
}
