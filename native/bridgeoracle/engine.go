package bridgeoracle

import (
	"math/big"

	orbiterrors "orbit/core/errors"
	"orbit/core/events"
	"orbit/core/types"
	"orbit/crypto"
	"orbit/external"
	nativecommon "orbit/native/common"
)

const moduleName = "bridgeoracle"

// OracleResolver maps the address BridgeOracle has on file for the upstream
// oracle to a live external.UpstreamOracle implementation. This keeps
// BridgeOracle's storage key (an address, per spec.md §6) decoupled from
// however the host process happens to wire up oracle instances.
type OracleResolver interface {
	ResolveOracle(addr crypto.Address) (external.UpstreamOracle, error)
}

// Engine implements the BridgeOracle contract.
type Engine struct {
	state    Store
	resolver OracleResolver
	emitter  events.Emitter
	pauses   nativecommon.PauseView
	now      func() uint64
}

// NewEngine constructs a BridgeOracle engine. The initial governance
// address is not set here; Initialize writes it.
func NewEngine(resolver OracleResolver) *Engine {
	return &Engine{resolver: resolver, emitter: events.NoopEmitter{}, now: func() uint64 { return 0 }}
}

// SetState wires the engine to the ledger frame's storage view.
func (e *Engine) SetState(s Store) { e.state = s }

// SetEmitter wires event emission.
func (e *Engine) SetEmitter(em events.Emitter) {
	if em == nil {
		em = events.NoopEmitter{}
	}
	e.emitter = em
}

// SetPauses wires the module-pause guard.
func (e *Engine) SetPauses(p nativecommon.PauseView) { e.pauses = p }

// SetClock overrides the ledger-time source, primarily for deterministic
// tests.
func (e *Engine) SetClock(now func() uint64) {
	if now != nil {
		e.now = now
	}
}

// Initialize sets the initial admin. Calling it twice is fatal
// (ErrAlreadyInitialized), matching every Orbit contract's constructor
// semantics.
func (e *Engine) Initialize(admin crypto.Address) error {
	if e.state == nil {
		return errNilState
	}
	if _, ok, err := e.state.GetAdmin(); err != nil {
		return err
	} else if ok {
		return orbiterrors.ErrAlreadyInitialized
	}
	if err := e.state.PutAdmin(admin); err != nil {
		return err
	}
	e.emitter.Emit(events.Initialize{Contract: "BridgeOracle", Admin: admin})
	return nil
}

var errNilState = orbitErrNilState{}

type orbitErrNilState struct{}

func (orbitErrNilState) Error() string { return "bridgeoracle: state not configured" }

// Decimals delegates to the upstream oracle and never translates — every
// price in the system shares one decimals count (spec.md §4.1).
func (e *Engine) Decimals() (uint32, error) {
	if e.state == nil {
		return 0, errNilState
	}
	oracleAddr, ok, err := e.state.GetOracle()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, orbiterrors.ErrBlendPoolNotFound
	}
	upstream, err := e.resolver.ResolveOracle(oracleAddr)
	if err != nil {
		return 0, err
	}
	return upstream.Decimals()
}

// LastPrice implements spec.md §4.1's three-step resolution:
//  1. look up the bridge mapping, defaulting to identity;
//  2. short-circuit to the USD anchor if the mapping resolves to
//     Offchain("USD"), without invoking the upstream oracle;
//  3. otherwise invoke the upstream oracle with the resolved asset and
//     return its result verbatim, including a "no price" miss.
func (e *Engine) LastPrice(asset types.Asset) (*types.PriceData, error) {
	if e.state == nil {
		return nil, errNilState
	}
	to, ok, err := e.state.GetBridge(asset)
	if err != nil {
		return nil, err
	}
	if !ok {
		to = asset
	}

	if to.IsUSD() {
		decimals, err := e.Decimals()
		if err != nil {
			return nil, err
		}
		price := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
		return &types.PriceData{Price: price, Timestamp: e.now()}, nil
	}

	oracleAddr, ok, err := e.state.GetOracle()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, orbiterrors.ErrBlendPoolNotFound
	}
	upstream, err := e.resolver.ResolveOracle(oracleAddr)
	if err != nil {
		return nil, err
	}
	return upstream.LastPrice(to)
}

// AddAsset registers (or overwrites) a bridge mapping. Admin-gated,
// idempotent per key — overwriting is permitted only to governance
// (spec.md §3).
func (e *Engine) AddAsset(caller crypto.Address, from, to types.Asset) error {
	if e.state == nil {
		return errNilState
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.PutBridge(from, to); err != nil {
		return err
	}
	e.emitter.Emit(events.AddAsset{From: from, To: to})
	return nil
}

// SetOracle replaces the upstream oracle address. Admin-gated.
func (e *Engine) SetOracle(caller crypto.Address, oracle crypto.Address) error {
	if e.state == nil {
		return errNilState
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.PutOracle(oracle); err != nil {
		return err
	}
	e.emitter.Emit(events.SetOracle{Oracle: oracle})
	return nil
}

// SetAdmin rotates the governance address. Admin-gated.
func (e *Engine) SetAdmin(caller crypto.Address, newAdmin crypto.Address) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.PutAdmin(newAdmin); err != nil {
		return err
	}
	e.emitter.Emit(events.SetAdmin{Contract: "BridgeOracle", Admin: newAdmin})
	return nil
}

func (e *Engine) requireAdmin(caller crypto.Address) error {
	admin, ok, err := e.state.GetAdmin()
	if err != nil {
		return err
	}
	if !ok || !admin.Equal(caller) {
		return orbiterrors.ErrUnauthorized
	}
	return nil
}
