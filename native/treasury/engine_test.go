package treasury

import (
	"math/big"
	"testing"

	"golang.org/x/time/rate"

	"github.com/stretchr/testify/require"

	orbiterrors "orbit/core/errors"
	"orbit/core/types"
	"orbit/crypto"
	"orbit/external"
	"orbit/native/pegkeeper"
)

func addr(b byte) crypto.Address {
	return crypto.MustNewAddress(crypto.OrbitPrefix, []byte{b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b})
}

// fakeToken is a minimal in-memory external.Token used only by this
// package's tests.
type fakeToken struct {
	balances map[string]*big.Int
}

func newFakeToken() *fakeToken { return &fakeToken{balances: make(map[string]*big.Int)} }

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

// fakePool backs both Treasury's Supply/Withdraw calls and PegKeeper's
// Repay/WithdrawCollateral/FillUserLiquidationAuction calls against shared
// fakeToken instances, tracking a simple 1:1 supply ledger (b_rate applied
// separately via bRate).
type fakePool struct {
	tokenAddr       crypto.Address
	token           *fakeToken
	collateralToken *fakeToken
	supply          map[string]*big.Int
	bRate           *big.Int
}

func newFakePool(tokenAddr crypto.Address, token, collateral *fakeToken) *fakePool {
	return &fakePool{tokenAddr: tokenAddr, token: token, collateralToken: collateral, supply: make(map[string]*big.Int), bRate: big.NewInt(1_000_000_000_000)}
}

func (p *fakePool) Submit(from, spender, to crypto.Address, requests []types.Request) (*types.Position, error) {
	for _, req := range requests {
		switch req.Type {
		case types.RequestSupply:
			p.token.debit(from, req.Amount)
			cur := p.supply[from.String()]
			if cur == nil {
				cur = big.NewInt(0)
			}
			p.supply[from.String()] = new(big.Int).Add(cur, req.Amount)
		case types.RequestWithdraw:
			cur := p.supply[from.String()]
			if cur == nil {
				cur = big.NewInt(0)
			}
			p.supply[from.String()] = new(big.Int).Sub(cur, req.Amount)
			p.token.credit(to, req.Amount)
		case types.RequestRepay:
			p.token.debit(to, req.Amount)
		case types.RequestWithdrawCollateral:
			p.collateralToken.credit(to, req.Amount)
		}
	}
	return types.NewPosition(), nil
}

func (p *fakePool) GetPositions(user crypto.Address) (*types.Position, error) {
	pos := types.NewPosition()
	if v, ok := p.supply[user.String()]; ok {
		pos.Supply[p.tokenAddr.String()] = v
	}
	return pos, nil
}

func (p *fakePool) GetReserve(asset crypto.Address) (*types.Reserve, error) {
	return &types.Reserve{Data: types.ReserveData{BRate: p.bRate}}, nil
}

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

type fakeFactory struct{ valid bool }

func (f *fakeFactory) IsPool(addr crypto.Address) (bool, error) { return f.valid, nil }

type sharedResolver struct {
	pool   external.LendingPool
	router external.AMMRouter
	tokens map[string]external.Token
}

func (s *sharedResolver) ResolvePool(addr crypto.Address) (external.LendingPool, error) {
	return s.pool, nil
}
func (s *sharedResolver) ResolveRouter(addr crypto.Address) (external.AMMRouter, error) {
	return s.router, nil
}
func (s *sharedResolver) ResolveToken(addr crypto.Address) (external.Token, error) {
	return s.tokens[addr.String()], nil
}

type testFixture struct {
	engine         *Engine
	pkEngine       *pegkeeper.Engine
	admin          crypto.Address
	treasurySelf   crypto.Address
	pegkeeperSelf  crypto.Address
	token          crypto.Address
	collateral     crypto.Address
	pool           crypto.Address
	tokenMock      *fakeToken
	collateralMock *fakeToken
	poolMock       *fakePool
}

func newFixture(t *testing.T, rateNum, rateDen int64) *testFixture {
	t.Helper()
	admin := addr(1)
	treasurySelf := addr(2)
	pegkeeperSelf := addr(3)
	tokenAddr := addr(10)
	collateralAddr := addr(11)
	poolAddr := addr(12)

	token := newFakeToken()
	collateral := newFakeToken()
	pool := newFakePool(tokenAddr, token, collateral)
	router := &fakeRouter{token: token, collateralToken: collateral, rateNumerator: rateNum, rateDenominator: rateDen}

	resolver := &sharedResolver{pool: pool, router: router, tokens: map[string]external.Token{
		tokenAddr.String():      token,
		collateralAddr.String(): collateral,
	}}

	pk := pegkeeper.NewEngine(pegkeeperSelf, resolver, resolver, resolver)
	pk.SetState(newPegkeeperMemStore())
	require.NoError(t, pk.Initialize(admin, treasurySelf))

	factory := &fakeFactory{valid: true}
	e := NewEngine(treasurySelf, resolver, resolver, factory, pk)
	e.SetRateLimit(rate.NewLimiter(rate.Inf, 100))
	e.SetState(newMemStore())
	require.NoError(t, e.Initialize(admin))
	require.NoError(t, e.SetPegkeeper(admin, pegkeeperSelf))
	require.NoError(t, e.AddStablecoin(admin, tokenAddr, poolAddr))

	return &testFixture{
		engine: e, pkEngine: pk, admin: admin, treasurySelf: treasurySelf, pegkeeperSelf: pegkeeperSelf,
		token: tokenAddr, collateral: collateralAddr, pool: poolAddr,
		tokenMock: token, collateralMock: collateral, poolMock: pool,
	}
}

// newPegkeeperMemStore mirrors pegkeeper's own in-memory test store but
// lives here since pegkeeper's is unexported to its package.
type pegkeeperMemStore struct {
	admin       crypto.Address
	hasAdmin    bool
	treasury    crypto.Address
	hasTreasury bool
}

func newPegkeeperMemStore() *pegkeeperMemStore { return &pegkeeperMemStore{} }

func (m *pegkeeperMemStore) GetAdmin() (crypto.Address, bool, error) { return m.admin, m.hasAdmin, nil }
func (m *pegkeeperMemStore) PutAdmin(a crypto.Address) error {
	m.admin = a
	m.hasAdmin = true
	return nil
}
func (m *pegkeeperMemStore) GetTreasury() (crypto.Address, bool, error) {
	return m.treasury, m.hasTreasury, nil
}
func (m *pegkeeperMemStore) PutTreasury(a crypto.Address) error {
	m.treasury = a
	m.hasTreasury = true
	return nil
}

func TestIssueAndRedeem(t *testing.T) {
	f := newFixture(t, 110, 100)

	require.NoError(t, f.engine.IncreaseSupply(f.admin, f.token, big.NewInt(1_000_000_0000000)))

	supply, _ := f.poolMock.GetPositions(f.treasurySelf)
	require.Equal(t, big.NewInt(1_000_000_0000000), supply.Supply[f.token.String()])

	require.NoError(t, f.engine.DecreaseSupply(f.admin, f.token, big.NewInt(500_000_0000000)))

	ts, err := newMemStoreHelper(f.engine).GetTotalSupply(f.token)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(500_000_0000000), ts)

	balance, _ := f.tokenMock.Balance(f.treasurySelf)
	require.Equal(t, big.NewInt(0), balance)
}

func newMemStoreHelper(e *Engine) Store { return e.state }

func TestKeepPegHappyPath(t *testing.T) {
	f := newFixture(t, 110, 100)
	require.NoError(t, f.engine.IncreaseSupply(f.admin, f.token, big.NewInt(8_800_0000000)))

	auction := addr(20)
	amm := addr(21)
	feeTaker := addr(22)
	args := []any{
		f.token, big.NewInt(8_800_0000000), f.pool,
		auction, f.collateral, big.NewInt(8_800_0000000), uint32(100),
		amm, big.NewInt(1), feeTaker,
	}
	profit, err := f.engine.KeepPeg("fl_receive", args)
	require.NoError(t, err)
	require.True(t, profit.Sign() > 0)

	feeTakerBalance, _ := f.tokenMock.Balance(feeTaker)
	require.Equal(t, profit, feeTakerBalance)

	treasuryBalance, _ := f.tokenMock.Balance(f.treasurySelf)
	require.Equal(t, big.NewInt(0), treasuryBalance)
}

func TestKeepPegWrongPoolAborts(t *testing.T) {
	f := newFixture(t, 110, 100)
	wrongPool := addr(99)
	args := []any{f.token, big.NewInt(1), wrongPool}
	_, err := f.engine.KeepPeg("fl_receive", args)
	require.ErrorIs(t, err, orbiterrors.ErrInvalidBlendPool)

	balance, _ := f.tokenMock.Balance(f.pegkeeperSelf)
	require.Equal(t, big.NewInt(0), balance)
}

func TestClaimComputesInterestFromBRateGrowth(t *testing.T) {
	f := newFixture(t, 110, 100)
	require.NoError(t, f.engine.IncreaseSupply(f.admin, f.token, big.NewInt(1_000_0000000)))

	f.poolMock.bRate = big.NewInt(1_010_000_000_000)

	treasurer := addr(30)
	interest, err := f.engine.Claim(f.admin, f.token, treasurer)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(10_0000000), interest)

	treasurerBalance, _ := f.tokenMock.Balance(treasurer)
	require.Equal(t, interest, treasurerBalance)

	ts, _ := newMemStoreHelper(f.engine).GetTotalSupply(f.token)
	require.Equal(t, big.NewInt(1_000_0000000), ts)
}
