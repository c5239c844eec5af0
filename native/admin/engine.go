// Package admin implements the governance façade that owns the admin
// privilege on Treasury, BridgeOracle, and the external pool, forwarding
// typed operator calls into the three (spec.md §4.4). It is the single
// caller those contracts' requireAdmin checks accept.
package admin

import (
	"math/big"

	orbiterrors "orbit/core/errors"
	"orbit/core/events"
	"orbit/core/types"
	"orbit/crypto"
	nativecommon "orbit/native/common"
	"orbit/native/bridgeoracle"
	"orbit/native/treasury"
)

const moduleName = "admin"

// Engine is the façade's stateful implementation.
type Engine struct {
	self     crypto.Address
	state    Store
	treasury *treasury.Engine
	oracle   *bridgeoracle.Engine
	pools    PoolAdminResolver
	emitter  events.Emitter
	pauses   nativecommon.PauseView
}

// NewEngine constructs a façade identified by self — the address Treasury
// and BridgeOracle must themselves have registered as their own admin for
// any of this façade's passthroughs to succeed.
func NewEngine(self crypto.Address, treasuryEngine *treasury.Engine, oracleEngine *bridgeoracle.Engine, pools PoolAdminResolver) *Engine {
	return &Engine{self: self, treasury: treasuryEngine, oracle: oracleEngine, pools: pools, emitter: events.NoopEmitter{}}
}

func (e *Engine) SetState(s Store) { e.state = s }

func (e *Engine) SetEmitter(em events.Emitter) {
	if em == nil {
		em = events.NoopEmitter{}
	}
	e.emitter = em
}

func (e *Engine) SetPauses(p nativecommon.PauseView) { e.pauses = p }

// Initialize constructs the façade once, recording its own governance
// operator plus the Treasury/BridgeOracle addresses it forwards to.
func (e *Engine) Initialize(admin, treasury, bridgeOracle crypto.Address) error {
	_, ok, err := e.state.GetAdmin()
	if err != nil {
		return err
	}
	if ok {
		return orbiterrors.ErrAlreadyInitialized
	}
	if err := e.state.PutAdmin(admin); err != nil {
		return err
	}
	if err := e.state.PutTreasury(treasury); err != nil {
		return err
	}
	if err := e.state.PutBridgeOracle(bridgeOracle); err != nil {
		return err
	}
	e.emitter.Emit(events.Initialize{Contract: "Admin", Admin: admin})
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

// NewStablecoin composes BridgeOracle.add_asset + Treasury.add_stablecoin +
// Treasury.increase_supply into one governance call (spec.md §4.4).
func (e *Engine) NewStablecoin(caller, token crypto.Address, peggedTo types.Asset, blendPool crypto.Address, initialSupply *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.oracle.AddAsset(e.self, types.NewOnchainAsset(token), peggedTo); err != nil {
		return err
	}
	if err := e.treasury.AddStablecoin(e.self, token, blendPool); err != nil {
		return err
	}
	if err := e.treasury.IncreaseSupply(e.self, token, initialSupply); err != nil {
		return err
	}
	e.emitter.Emit(events.NewStablecoin{Token: token, PeggedTo: peggedTo, BlendPool: blendPool, InitialSupply: initialSupply})
	return nil
}

// UpdatePegkeeper forwards to Treasury.set_pegkeeper.
func (e *Engine) UpdatePegkeeper(caller, pegkeeper crypto.Address) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.treasury.SetPegkeeper(e.self, pegkeeper); err != nil {
		return err
	}
	e.emitter.Emit(events.UpdatePegkeeper{Pegkeeper: pegkeeper})
	return nil
}

// UpdateOracle forwards to BridgeOracle.set_oracle.
func (e *Engine) UpdateOracle(caller, oracle crypto.Address) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.oracle.SetOracle(e.self, oracle); err != nil {
		return err
	}
	e.emitter.Emit(events.UpdateOracle{Oracle: oracle})
	return nil
}

// UpdateSupply forwards to Treasury.increase_supply when amount is
// positive, Treasury.decrease_supply on its absolute value otherwise.
func (e *Engine) UpdateSupply(caller, token crypto.Address, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if amount.Sign() > 0 {
		if err := e.treasury.IncreaseSupply(e.self, token, amount); err != nil {
			return err
		}
	} else {
		if err := e.treasury.DecreaseSupply(e.self, token, new(big.Int).Abs(amount)); err != nil {
			return err
		}
	}
	e.emitter.Emit(events.UpdateSupply{Token: token, Amount: amount})
	return nil
}

// UpdatePool forwards to the external pool's update_pool governance call.
func (e *Engine) UpdatePool(caller, pool crypto.Address, backstopTakeRate, maxPositions uint32) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	handle, err := e.pools.ResolvePoolAdmin(pool)
	if err != nil {
		return err
	}
	if err := handle.UpdatePool(backstopTakeRate, maxPositions); err != nil {
		return err
	}
	e.emitter.Emit(events.UpdatePool{Pool: pool, BackstopTakeRate: backstopTakeRate, MaxPositions: maxPositions})
	return nil
}

// SetReserve forwards to the external pool's queue_set_reserve followed by
// set_reserve, mirroring admin/src/contract.rs's two-step commit.
func (e *Engine) SetReserve(caller, pool, asset crypto.Address, metadata types.ReserveMetadata) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	handle, err := e.pools.ResolvePoolAdmin(pool)
	if err != nil {
		return err
	}
	if err := handle.QueueSetReserve(asset, metadata); err != nil {
		return err
	}
	if err := handle.SetReserveLive(asset); err != nil {
		return err
	}
	e.emitter.Emit(events.SetReserve{Pool: pool, Asset: asset, Metadata: metadata})
	return nil
}

// SetEmissionsConfig forwards to the external pool's set_emissions_config.
func (e *Engine) SetEmissionsConfig(caller, pool crypto.Address, metadata []types.ReserveEmissionMetadata) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	handle, err := e.pools.ResolvePoolAdmin(pool)
	if err != nil {
		return err
	}
	if err := handle.SetEmissionsConfig(metadata); err != nil {
		return err
	}
	e.emitter.Emit(events.SetEmissionsConfig{Pool: pool, Metadata: metadata})
	return nil
}

// SetStatus forwards to the external pool's set_status.
func (e *Engine) SetStatus(caller, pool crypto.Address, status uint32) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	handle, err := e.pools.ResolvePoolAdmin(pool)
	if err != nil {
		return err
	}
	if err := handle.SetStatus(status); err != nil {
		return err
	}
	e.emitter.Emit(events.SetStatus{Pool: pool, Status: status})
	return nil
}

// SetAdmin rotates the façade's own governance operator.
func (e *Engine) SetAdmin(caller, newAdmin crypto.Address) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.PutAdmin(newAdmin); err != nil {
		return err
	}
	e.emitter.Emit(events.SetAdmin{Contract: "Admin", Admin: newAdmin})
	return nil
}
