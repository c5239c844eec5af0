package pegkeeper

import (
	"orbit/crypto"
	"orbit/external"
)

// PoolResolver maps a blend-pool address to a live external.LendingPool.
type PoolResolver interface {
	ResolvePool(addr crypto.Address) (external.LendingPool, error)
}

// RouterResolver maps an AMM router address to a live external.AMMRouter.
type RouterResolver interface {
	ResolveRouter(addr crypto.Address) (external.AMMRouter, error)
}

// TokenResolver maps a token address to a live external.Token.
type TokenResolver interface {
	ResolveToken(addr crypto.Address) (external.Token, error)
}
