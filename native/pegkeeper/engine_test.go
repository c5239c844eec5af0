package pegkeeper

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"orbit/core/authz"
	orbiterrors "orbit/core/errors"
	"orbit/core/types"
	"orbit/crypto"
	"orbit/external"
)

// grantFor builds the same sub-invocation authorization Treasury's KeepPeg
// constructs before dispatching into fl_receive, for tests that call
// FlReceive directly rather than going through Treasury.
func grantFor(self, token, pool crypto.Address, amount *big.Int) *authz.Verifier {
	return authz.NewVerifier(authz.NewGrant(token, "transfer", self, pool, amount))
}

func addr(b byte) crypto.Address {
	return crypto.MustNewAddress(crypto.OrbitPrefix, []byte{b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b})
}

// fakeToken is a minimal in-memory external.Token used only by this
// package's tests.
type fakeToken struct {
	balances map[string]*big.Int
}

func newFakeToken() *fakeToken { return &fakeToken{balances: make(map[string]*big.Int)} }

func (t *fakeToken) set(owner crypto.Address, amount int64) {
	t.balances[owner.String()] = big.NewInt(amount)
}

func (t *fakeToken) Balance(owner crypto.Address) (*big.Int, error) {
	v, ok := t.balances[owner.String()]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(v), nil
}

func (t *fakeToken) credit(owner crypto.Address, amount *big.Int) {
	cur, _ := t.Balance(owner)
	t.balances[owner.String()] = new(big.Int).Add(cur, amount)
}

func (t *fakeToken) debit(owner crypto.Address, amount *big.Int) {
	cur, _ := t.Balance(owner)
	t.balances[owner.String()] = new(big.Int).Sub(cur, amount)
}

func (t *fakeToken) Transfer(from, to crypto.Address, amount *big.Int) error {
	t.debit(from, amount)
	t.credit(to, amount)
	return nil
}

func (t *fakeToken) TransferFrom(spender, from, to crypto.Address, amount *big.Int) error {
	return t.Transfer(from, to, amount)
}

func (t *fakeToken) Approve(owner, spender crypto.Address, amount *big.Int, expirationLedger uint64) error {
	return nil
}

func (t *fakeToken) Burn(from crypto.Address, amount *big.Int) error {
	t.debit(from, amount)
	return nil
}

func (t *fakeToken) Mint(admin, to crypto.Address, amount *big.Int) error {
	t.credit(to, amount)
	return nil
}

func (t *fakeToken) SetAdmin(caller, newAdmin crypto.Address) error { return nil }

// fakePool simulates the atomic liquidate/repay/withdraw batch: it debits
// the flashloaned principal and credits freed collateral directly against
// the token mocks it was constructed with, then reports a closed position.
type fakePool struct {
	token           *fakeToken
	collateralToken *fakeToken
	lotAmount       *big.Int
}

func (p *fakePool) Submit(from, spender, to crypto.Address, requests []types.Request) (*types.Position, error) {
	for _, req := range requests {
		switch req.Type {
		case types.RequestRepay:
			p.token.debit(to, req.Amount)
		case types.RequestWithdrawCollateral:
			p.collateralToken.credit(to, req.Amount)
		}
	}
	return types.NewPosition(), nil
}

func (p *fakePool) GetPositions(user crypto.Address) (*types.Position, error) {
	return types.NewPosition(), nil
}

func (p *fakePool) GetReserve(asset crypto.Address) (*types.Reserve, error) {
	return &types.Reserve{}, nil
}

// fakeRouter simulates a constant swap rate against the collateral token
// leg, crediting the proceeds in the principal token.
type fakeRouter struct {
	token           *fakeToken
	collateralToken *fakeToken
	rateNumerator   int64
	rateDenominator int64
}

func (r *fakeRouter) SwapExactTokensForTokens(amountIn, amountOutMin *big.Int, path []crypto.Address, to crypto.Address, deadline uint64) ([]*big.Int, error) {
	r.collateralToken.debit(to, amountIn)
	out := new(big.Int).Mul(amountIn, big.NewInt(r.rateNumerator))
	out.Div(out, big.NewInt(r.rateDenominator))
	r.token.credit(to, out)
	return []*big.Int{amountIn, out}, nil
}

type singleResolver struct {
	pool  external.LendingPool
	route external.AMMRouter
	token map[string]external.Token
}

func (s *singleResolver) ResolvePool(addr crypto.Address) (external.LendingPool, error) { return s.pool, nil }
func (s *singleResolver) ResolveRouter(addr crypto.Address) (external.AMMRouter, error) {
	return s.route, nil
}
func (s *singleResolver) ResolveToken(addr crypto.Address) (external.Token, error) {
	return s.token[addr.String()], nil
}

func newTestEngine(t *testing.T, rateNum, rateDen int64) (*Engine, crypto.Address, crypto.Address, crypto.Address, *fakeToken, *fakeToken) {
	t.Helper()
	self := addr(1)
	treasury := addr(2)
	admin := addr(3)
	token := newFakeToken()
	collateral := newFakeToken()
	pool := &fakePool{token: token, collateralToken: collateral}
	router := &fakeRouter{token: token, collateralToken: collateral, rateNumerator: rateNum, rateDenominator: rateDen}

	resolver := &singleResolver{pool: pool, route: router, token: map[string]external.Token{}}
	tokenAddr := addr(10)
	collateralAddr := addr(11)
	resolver.token[tokenAddr.String()] = token
	resolver.token[collateralAddr.String()] = collateral

	e := NewEngine(self, resolver, resolver, resolver)
	e.SetState(newMemStore())
	require.NoError(t, e.Initialize(admin, treasury))
	return e, treasury, tokenAddr, collateralAddr, token, collateral
}

func TestFlReceiveHappyPathZeroNetFlow(t *testing.T) {
	e, treasury, tokenAddr, collateralAddr, token, collateral := newTestEngine(t, 110, 100)

	self := addr(1)
	token.set(self, 8_800_0000000)
	pool := addr(20)
	auction := addr(21)
	amm := addr(22)
	feeTaker := addr(23)

	grant := grantFor(self, tokenAddr, pool, big.NewInt(8_800_0000000))
	profit, err := e.FlReceive(treasury, grant, tokenAddr, big.NewInt(8_800_0000000), pool, auction,
		collateralAddr, big.NewInt(8_800_0000000), 100, amm, big.NewInt(1), feeTaker)
	require.NoError(t, err)
	require.True(t, profit.Sign() > 0)

	feeTakerBalance, _ := token.Balance(feeTaker)
	require.Equal(t, profit, feeTakerBalance)

	selfTokenAfter, _ := token.Balance(self)
	require.Equal(t, big.NewInt(8_800_0000000), selfTokenAfter)

	selfCollateralAfter, _ := collateral.Balance(self)
	require.Equal(t, big.NewInt(0), selfCollateralAfter)
}

func TestFlReceiveUnprofitableAborts(t *testing.T) {
	e, treasury, tokenAddr, collateralAddr, token, _ := newTestEngine(t, 90, 100)

	self := addr(1)
	token.set(self, 8_800_0000000)
	pool := addr(20)
	auction := addr(21)
	amm := addr(22)
	feeTaker := addr(23)

	grant := grantFor(self, tokenAddr, pool, big.NewInt(8_800_0000000))
	_, err := e.FlReceive(treasury, grant, tokenAddr, big.NewInt(8_800_0000000), pool, auction,
		collateralAddr, big.NewInt(8_800_0000000), 100, amm, big.NewInt(1), feeTaker)
	require.ErrorIs(t, err, orbiterrors.ErrNotProfitable)
}

func TestFlReceiveRejectsNonTreasuryCaller(t *testing.T) {
	e, _, tokenAddr, collateralAddr, _, _ := newTestEngine(t, 110, 100)

	intruder := addr(99)
	_, err := e.FlReceive(intruder, nil, tokenAddr, big.NewInt(1), addr(20), addr(21),
		collateralAddr, big.NewInt(1), 100, addr(22), big.NewInt(1), addr(23))
	require.ErrorIs(t, err, orbiterrors.ErrUnauthorized)
}
