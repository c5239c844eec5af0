package mock

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	orbiterrors "orbit/core/errors"
	"orbit/crypto"
)

func addr(b byte) crypto.Address {
	return crypto.MustNewAddress(crypto.OrbitPrefix, []byte{b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b})
}

func TestTokenTransferMovesBalance(t *testing.T) {
	admin := addr(1)
	alice, bob := addr(2), addr(3)
	token := NewToken(admin)
	token.Credit(alice, big.NewInt(100))

	require.NoError(t, token.Transfer(alice, bob, big.NewInt(40)))

	aliceBal, err := token.Balance(alice)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(60), aliceBal)

	bobBal, err := token.Balance(bob)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(40), bobBal)
}

func TestTokenTransferRejectsInsufficientBalance(t *testing.T) {
	admin := addr(1)
	alice, bob := addr(2), addr(3)
	token := NewToken(admin)
	token.Credit(alice, big.NewInt(10))

	err := token.Transfer(alice, bob, big.NewInt(11))
	require.ErrorIs(t, err, orbiterrors.ErrNotEnoughSupply)
}

func TestTokenTransferFromRequiresAllowance(t *testing.T) {
	admin := addr(1)
	owner, spender, to := addr(2), addr(3), addr(4)
	token := NewToken(admin)
	token.Credit(owner, big.NewInt(100))

	err := token.TransferFrom(spender, owner, to, big.NewInt(10))
	require.ErrorIs(t, err, orbiterrors.ErrUnauthorized)

	require.NoError(t, token.Approve(owner, spender, big.NewInt(10), 0))
	require.NoError(t, token.TransferFrom(spender, owner, to, big.NewInt(10)))

	// the allowance is now exhausted
	err = token.TransferFrom(spender, owner, to, big.NewInt(1))
	require.ErrorIs(t, err, orbiterrors.ErrUnauthorized)
}

func TestTokenTransferFromRespectsExpiration(t *testing.T) {
	admin := addr(1)
	owner, spender, to := addr(2), addr(3), addr(4)
	token := NewToken(admin)
	token.Credit(owner, big.NewInt(100))
	token.SetClock(func() uint64 { return 50 })

	require.NoError(t, token.Approve(owner, spender, big.NewInt(10), 10))

	err := token.TransferFrom(spender, owner, to, big.NewInt(5))
	require.ErrorIs(t, err, orbiterrors.ErrUnauthorized)
}

func TestTokenMintRequiresAdmin(t *testing.T) {
	admin := addr(1)
	notAdmin := addr(2)
	to := addr(3)
	token := NewToken(admin)

	err := token.Mint(notAdmin, to, big.NewInt(5))
	require.ErrorIs(t, err, orbiterrors.ErrUnauthorized)

	require.NoError(t, token.Mint(admin, to, big.NewInt(5)))
	bal, err := token.Balance(to)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(5), bal)
}

func TestTokenSetAdminRotatesGovernance(t *testing.T) {
	admin := addr(1)
	newAdmin := addr(2)
	to := addr(3)
	token := NewToken(admin)

	require.NoError(t, token.SetAdmin(admin, newAdmin))
	require.ErrorIs(t, token.Mint(admin, to, big.NewInt(1)), orbiterrors.ErrUnauthorized)
	require.NoError(t, token.Mint(newAdmin, to, big.NewInt(1)))
}
