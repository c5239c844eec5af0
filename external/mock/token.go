// Package mock supplies in-memory reference implementations of the
// external collaborator interfaces declared in package external: the
// lending pool, the AMM router, the SEP-41-shaped token, the signed-proof
// upstream oracle, the pool factory, and the pool's admin surface. None of
// these model a real production integration; they exist so cmd/orbitd's
// demo mode and the engine test suites can exercise the full call graph
// without a live Soroban host.
package mock

import (
	"math/big"
	"sync"

	orbiterrors "orbit/core/errors"
	"orbit/crypto"
)

type allowance struct {
	amount           *big.Int
	expirationLedger uint64
}

// Token is an in-memory SEP-41-shaped asset: balances, transfer allowances,
// and an admin-gated mint/set_admin surface.
type Token struct {
	mu         sync.Mutex
	admin      crypto.Address
	balances   map[string]*big.Int
	allowances map[string]map[string]allowance
	ledgerNow  func() uint64
}

// NewToken constructs an empty token administered by admin.
func NewToken(admin crypto.Address) *Token {
	return &Token{
		admin:      admin,
		balances:   make(map[string]*big.Int),
		allowances: make(map[string]map[string]allowance),
		ledgerNow:  func() uint64 { return 0 },
	}
}

// SetClock overrides the ledger-time source used to evaluate allowance
// expiration, primarily for deterministic tests.
func (t *Token) SetClock(now func() uint64) {
	if now != nil {
		t.ledgerNow = now
	}
}

func (t *Token) balanceLocked(owner crypto.Address) *big.Int {
	v, ok := t.balances[owner.String()]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

// Balance returns owner's current balance.
func (t *Token) Balance(owner crypto.Address) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balanceLocked(owner), nil
}

// Credit mints amount to owner without an admin check, used only to seed
// fixtures (an issued stablecoin's own Mint already covers the gated path).
func (t *Token) Credit(owner crypto.Address, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.balanceLocked(owner)
	t.balances[owner.String()] = cur.Add(cur, amount)
}

// Transfer moves amount from from's balance to to's, failing on
// insufficient balance.
func (t *Token) Transfer(from, to crypto.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transferLocked(from, to, amount)
}

func (t *Token) transferLocked(from, to crypto.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return orbiterrors.ErrInvalidAmount
	}
	bal := t.balanceLocked(from)
	if bal.Cmp(amount) < 0 {
		return orbiterrors.ErrNotEnoughSupply
	}
	t.balances[from.String()] = new(big.Int).Sub(bal, amount)
	credited := t.balanceLocked(to)
	t.balances[to.String()] = credited.Add(credited, amount)
	return nil
}

// TransferFrom spends spender's pre-approved allowance over from's balance,
// crediting to. A spender transferring its own funds needs no allowance.
func (t *Token) TransferFrom(spender, from, to crypto.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !spender.Equal(from) {
		owner := t.allowances[from.String()]
		grant, ok := owner[spender.String()]
		if !ok || grant.amount.Cmp(amount) < 0 {
			return orbiterrors.ErrUnauthorized
		}
		if grant.expirationLedger != 0 && grant.expirationLedger < t.ledgerNow() {
			return orbiterrors.ErrUnauthorized
		}
		owner[spender.String()] = allowance{amount: new(big.Int).Sub(grant.amount, amount), expirationLedger: grant.expirationLedger}
	}
	return t.transferLocked(from, to, amount)
}

// Approve grants spender the right to move up to amount from owner's
// balance until expirationLedger (0 meaning no expiry).
func (t *Token) Approve(owner, spender crypto.Address, amount *big.Int, expirationLedger uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	owned, ok := t.allowances[owner.String()]
	if !ok {
		owned = make(map[string]allowance)
		t.allowances[owner.String()] = owned
	}
	owned[spender.String()] = allowance{amount: new(big.Int).Set(amount), expirationLedger: expirationLedger}
	return nil
}

// Burn destroys amount from from's balance. SEP-41's burn is authorized by
// from itself at the host level; the mock trusts its caller the same way.
func (t *Token) Burn(from crypto.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	bal := t.balanceLocked(from)
	if bal.Cmp(amount) < 0 {
		return orbiterrors.ErrNotEnoughSupply
	}
	t.balances[from.String()] = new(big.Int).Sub(bal, amount)
	return nil
}

// Mint creates amount and credits it to, gated on admin matching the
// token's configured admin.
func (t *Token) Mint(admin, to crypto.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.admin.Equal(admin) {
		return orbiterrors.ErrUnauthorized
	}
	cur := t.balanceLocked(to)
	t.balances[to.String()] = cur.Add(cur, amount)
	return nil
}

// SetAdmin rotates the token's admin, gated on the current admin.
func (t *Token) SetAdmin(caller, newAdmin crypto.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.admin.Equal(caller) {
		return orbiterrors.ErrUnauthorized
	}
	t.admin = newAdmin
	return nil
}
