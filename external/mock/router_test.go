package mock

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"orbit/crypto"
)

func TestRouterSwapAppliesConstantProductFormula(t *testing.T) {
	collateralAddr, principalAddr := addr(10), addr(11)
	collateral := NewToken(addr(1))
	principal := NewToken(addr(1))
	router := NewRouter(30) // 0.3%

	router.AddLiquidity(collateralAddr, collateral, big.NewInt(10_000), principalAddr, principal, big.NewInt(10_000))

	trader := addr(5)
	collateral.Credit(trader, big.NewInt(1_000))

	out, err := router.SwapExactTokensForTokens(
		big.NewInt(1_000), big.NewInt(1),
		[]crypto.Address{collateralAddr, principalAddr},
		trader, ^uint64(0),
	)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, big.NewInt(1_000), out[0])

	// amountInAfterFee = 1000 - 30*1000/10000 = 997
	// amountOut = 997*10000 / (10000+997) = 906 (integer truncation)
	require.Equal(t, big.NewInt(906), out[1])

	principalBal, err := principal.Balance(trader)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(906), principalBal)

	collateralBal, err := collateral.Balance(trader)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), collateralBal)
}

func TestRouterSwapRejectsBelowMinOutput(t *testing.T) {
	collateralAddr, principalAddr := addr(10), addr(11)
	collateral := NewToken(addr(1))
	principal := NewToken(addr(1))
	router := NewRouter(0)
	router.AddLiquidity(collateralAddr, collateral, big.NewInt(10_000), principalAddr, principal, big.NewInt(10_000))

	trader := addr(5)
	collateral.Credit(trader, big.NewInt(1_000))

	_, err := router.SwapExactTokensForTokens(
		big.NewInt(1_000), big.NewInt(5_000),
		[]crypto.Address{collateralAddr, principalAddr},
		trader, ^uint64(0),
	)
	require.ErrorIs(t, err, errInsufficientOutput)
}

func TestRouterSwapRejectsExpiredDeadline(t *testing.T) {
	collateralAddr, principalAddr := addr(10), addr(11)
	collateral := NewToken(addr(1))
	principal := NewToken(addr(1))
	router := NewRouter(0)
	router.AddLiquidity(collateralAddr, collateral, big.NewInt(10_000), principalAddr, principal, big.NewInt(10_000))
	router.SetClock(func() uint64 { return 100 })

	trader := addr(5)
	collateral.Credit(trader, big.NewInt(1_000))

	_, err := router.SwapExactTokensForTokens(
		big.NewInt(1_000), big.NewInt(0),
		[]crypto.Address{collateralAddr, principalAddr},
		trader, 50,
	)
	require.ErrorIs(t, err, errDeadlineExpired)
}
