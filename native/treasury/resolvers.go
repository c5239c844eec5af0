package treasury

import (
	"orbit/crypto"
	"orbit/external"
)

// PoolResolver maps a blend-pool address to a live external.LendingPool.
type PoolResolver interface {
	ResolvePool(addr crypto.Address) (external.LendingPool, error)
}

// TokenResolver maps a token address to a live external.Token.
type TokenResolver interface {
	ResolveToken(addr crypto.Address) (external.Token, error)
}
