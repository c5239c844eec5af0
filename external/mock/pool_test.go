package mock

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"orbit/core/types"
)

func TestPoolSupplyAndWithdrawRoundTrip(t *testing.T) {
	poolSelf := addr(1)
	token := NewToken(addr(9))
	tokenAddr := addr(10)
	pool := NewPool(poolSelf)
	pool.RegisterReserve(tokenAddr, token, types.ReserveMetadata{Index: 0})

	user := addr(2)
	token.Credit(user, big.NewInt(1_000))

	_, err := pool.Submit(user, user, user, []types.Request{
		{Type: types.RequestSupply, Address: tokenAddr, Amount: big.NewInt(400)},
	})
	require.NoError(t, err)

	bal, err := token.Balance(user)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(600), bal)

	pos, err := pool.GetPositions(user)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(400), pos.Supply[tokenAddr.String()])

	_, err = pool.Submit(user, user, user, []types.Request{
		{Type: types.RequestWithdraw, Address: tokenAddr, Amount: big.NewInt(150)},
	})
	require.NoError(t, err)

	bal, err = token.Balance(user)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(750), bal)

	pos, err = pool.GetPositions(user)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(250), pos.Supply[tokenAddr.String()])
}

func TestPoolGetReserveReflectsSetBRate(t *testing.T) {
	poolSelf := addr(1)
	token := NewToken(addr(9))
	tokenAddr := addr(10)
	pool := NewPool(poolSelf)
	pool.RegisterReserve(tokenAddr, token, types.ReserveMetadata{Index: 3})

	require.NoError(t, pool.SetBRate(tokenAddr, big.NewInt(1_050_000_000_000)))

	reserve, err := pool.GetReserve(tokenAddr)
	require.NoError(t, err)
	require.Equal(t, uint32(3), reserve.Config.Index)
	require.Equal(t, big.NewInt(1_050_000_000_000), reserve.Data.BRate)
}

func TestPoolFillUserLiquidationAuctionClosesFillerPosition(t *testing.T) {
	poolSelf := addr(1)
	debtToken := NewToken(addr(9))
	collateralToken := NewToken(addr(8))
	debtAddr := addr(10)
	collateralAddr := addr(11)

	pool := NewPool(poolSelf)
	pool.RegisterReserve(debtAddr, debtToken, types.ReserveMetadata{})
	pool.RegisterReserve(collateralAddr, collateralToken, types.ReserveMetadata{})

	borrower := addr(5)
	auctionID := addr(20)
	require.NoError(t, pool.SeedAuction(auctionID, borrower, collateralAddr, debtAddr, big.NewInt(1_000), big.NewInt(500), 100))

	filler := addr(6)
	debtToken.Credit(filler, big.NewInt(500))

	pos, err := pool.Submit(filler, filler, filler, []types.Request{
		{Type: types.RequestFillUserLiquidationAuction, Address: auctionID, Amount: big.NewInt(100)},
		{Type: types.RequestRepay, Address: debtAddr, Amount: big.NewInt(500)},
		{Type: types.RequestWithdrawCollateral, Address: collateralAddr, Amount: big.NewInt(1_000)},
	})
	require.NoError(t, err)
	require.True(t, pos.IsClosed())

	fillerDebtBal, err := debtToken.Balance(filler)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), fillerDebtBal)

	fillerCollateralBal, err := collateralToken.Balance(filler)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1_000), fillerCollateralBal)

	borrowerPos, err := pool.GetPositions(borrower)
	require.NoError(t, err)
	require.True(t, borrowerPos.IsClosed())
}

func TestPoolFillUserLiquidationAuctionCapsAtPercentAvailable(t *testing.T) {
	poolSelf := addr(1)
	debtToken := NewToken(addr(9))
	collateralToken := NewToken(addr(8))
	debtAddr := addr(10)
	collateralAddr := addr(11)

	pool := NewPool(poolSelf)
	pool.RegisterReserve(debtAddr, debtToken, types.ReserveMetadata{})
	pool.RegisterReserve(collateralAddr, collateralToken, types.ReserveMetadata{})

	borrower := addr(5)
	auctionID := addr(20)
	// only half of the lot/debt is currently available to fill
	require.NoError(t, pool.SeedAuction(auctionID, borrower, collateralAddr, debtAddr, big.NewInt(1_000), big.NewInt(500), 50))

	filler := addr(6)
	_, err := pool.Submit(filler, filler, filler, []types.Request{
		{Type: types.RequestFillUserLiquidationAuction, Address: auctionID, Amount: big.NewInt(100)},
	})
	require.NoError(t, err)

	fillerPos, err := pool.GetPositions(filler)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(500), fillerPos.Collateral[collateralAddr.String()])
	require.Equal(t, big.NewInt(250), fillerPos.Liabilities[debtAddr.String()])
}

func TestPoolSubmitRejectsUnregisteredReserve(t *testing.T) {
	pool := NewPool(addr(1))
	_, err := pool.Submit(addr(2), addr(2), addr(2), []types.Request{
		{Type: types.RequestSupply, Address: addr(99), Amount: big.NewInt(1)},
	})
	require.ErrorIs(t, err, errReserveNotFound)
}
