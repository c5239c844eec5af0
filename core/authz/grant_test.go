package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"orbit/crypto"
)

func addr(b byte) crypto.Address {
	buf := make([]byte, 20)
	buf[19] = b
	return crypto.MustNewAddress(crypto.OrbitPrefix, buf)
}

func TestRequireMatchesExactScope(t *testing.T) {
	pool := addr(1)
	grant := NewGrant(pool, "transfer", "self", "pool", int64(100))

	v := NewVerifier(grant)
	_, err := v.Require(Call{Contract: pool, Function: "transfer", Args: []any{"self", "pool", int64(100)}})
	require.NoError(t, err)
}

func TestRequireRejectsArgMismatch(t *testing.T) {
	pool := addr(1)
	grant := NewGrant(pool, "transfer", "self", "pool", int64(100))

	v := NewVerifier(grant)
	_, err := v.Require(Call{Contract: pool, Function: "transfer", Args: []any{"self", "pool", int64(101)}})
	require.Error(t, err)
	var mismatch *ErrScopeMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestRequireRejectsWrongContract(t *testing.T) {
	pool := addr(1)
	other := addr(2)
	grant := NewGrant(pool, "transfer", "self", "pool", int64(100))

	v := NewVerifier(grant)
	_, err := v.Require(Call{Contract: other, Function: "transfer", Args: []any{"self", "pool", int64(100)}})
	require.Error(t, err)
}

func TestRequireWalksNestedChildren(t *testing.T) {
	router := addr(3)
	pair := addr(4)
	child := NewGrant(pair, "transfer", "self", "pair", int64(50))
	grant := NewGrant(router, "swap", "in", "out").WithChildren(child)

	v := NewVerifier(grant)
	nested, err := v.Require(Call{Contract: router, Function: "swap", Args: []any{"in", "out"}})
	require.NoError(t, err)

	_, err = nested.Require(Call{Contract: pair, Function: "transfer", Args: []any{"self", "pair", int64(50)}})
	require.NoError(t, err)
}
