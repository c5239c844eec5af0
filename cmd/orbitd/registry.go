package main

import (
	"fmt"
	"sync"

	"orbit/crypto"
	"orbit/external"
	"orbit/external/mock"
)

// registry holds the demo-mode external/mock instances cmd/orbitd wires up
// at boot, keyed by the address each instance was registered under. It
// satisfies every native package's *Resolver interface so the contract
// engines stay decoupled from the fact that, in this single-process demo
// harness, "resolving an address" just means a map lookup.
type registry struct {
	mu      sync.RWMutex
	pools   map[string]external.LendingPool
	admins  map[string]external.PoolAdmin
	routers map[string]external.AMMRouter
	tokens  map[string]external.Token
	oracles map[string]external.UpstreamOracle
}

func newRegistry() *registry {
	return &registry{
		pools:   make(map[string]external.LendingPool),
		admins:  make(map[string]external.PoolAdmin),
		routers: make(map[string]external.AMMRouter),
		tokens:  make(map[string]external.Token),
		oracles: make(map[string]external.UpstreamOracle),
	}
}

func (r *registry) registerPool(addr crypto.Address, pool *mock.Pool, admin *mock.PoolAdmin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[addr.String()] = pool
	r.admins[addr.String()] = admin
}

func (r *registry) registerRouter(addr crypto.Address, router *mock.Router) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routers[addr.String()] = router
}

func (r *registry) registerToken(addr crypto.Address, token *mock.Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[addr.String()] = token
}

func (r *registry) registerOracle(addr crypto.Address, oracle *mock.UpstreamOracle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.oracles[addr.String()] = oracle
}

// ResolvePool implements treasury.PoolResolver and pegkeeper.PoolResolver.
func (r *registry) ResolvePool(addr crypto.Address) (external.LendingPool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pool, ok := r.pools[addr.String()]
	if !ok {
		return nil, fmt.Errorf("orbitd: no lending pool registered at %s", addr.String())
	}
	return pool, nil
}

// ResolvePoolAdmin implements admin.PoolAdminResolver.
func (r *registry) ResolvePoolAdmin(addr crypto.Address) (external.PoolAdmin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.admins[addr.String()]
	if !ok {
		return nil, fmt.Errorf("orbitd: no pool admin registered at %s", addr.String())
	}
	return handle, nil
}

// ResolveRouter implements pegkeeper.RouterResolver.
func (r *registry) ResolveRouter(addr crypto.Address) (external.AMMRouter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	router, ok := r.routers[addr.String()]
	if !ok {
		return nil, fmt.Errorf("orbitd: no AMM router registered at %s", addr.String())
	}
	return router, nil
}

// ResolveToken implements treasury.TokenResolver and pegkeeper.TokenResolver.
func (r *registry) ResolveToken(addr crypto.Address) (external.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[addr.String()]
	if !ok {
		return nil, fmt.Errorf("orbitd: no token registered at %s", addr.String())
	}
	return token, nil
}

// ResolveOracle implements bridgeoracle.OracleResolver.
func (r *registry) ResolveOracle(addr crypto.Address) (external.UpstreamOracle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	oracle, ok := r.oracles[addr.String()]
	if !ok {
		return nil, fmt.Errorf("orbitd: no upstream oracle registered at %s", addr.String())
	}
	return oracle, nil
}
