package main

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/time/rate"

	"orbit/config"
	"orbit/core/events"
	"orbit/crypto"
	"orbit/external/mock"
	"orbit/ledger"
	"orbit/native/admin"
	"orbit/native/bridgeoracle"
	nativecommon "orbit/native/common"
	"orbit/native/pegkeeper"
	"orbit/native/treasury"
	"orbit/storage"
)

// app bundles the ledger and the four contract engines cmd/orbitd drives,
// plus the demo-mode external-collaborator registry every engine resolves
// through.
type app struct {
	ledger *ledger.Ledger
	reg    *registry
	pauses *nativecommon.Pauses

	self struct {
		treasury, pegkeeper, bridgeOracle, admin crypto.Address
	}

	treasury     *treasury.Engine
	pegkeeper    *pegkeeper.Engine
	bridgeOracle *bridgeoracle.Engine
	admin        *admin.Engine

	emitter events.Emitter
}

func newApp(db storage.Database, emitter events.Emitter, rateLimit config.RateLimit) (*app, error) {
	selfTreasury := crypto.MustNewAddress(crypto.OrbitPrefix, contractBytes("treasury"))
	selfPegkeeper := crypto.MustNewAddress(crypto.OrbitPrefix, contractBytes("pegkeeper"))
	selfBridgeOracle := crypto.MustNewAddress(crypto.OrbitPrefix, contractBytes("bridgeoracle"))
	selfAdmin := crypto.MustNewAddress(crypto.OrbitPrefix, contractBytes("admin"))

	reg := newRegistry()
	factory := mock.NewPoolFactory()

	pegkeeperEngine := pegkeeper.NewEngine(selfPegkeeper, reg, reg, reg)
	treasuryEngine := treasury.NewEngine(selfTreasury, reg, reg, factory, pegkeeperEngine)
	treasuryEngine.SetRateLimit(rate.NewLimiter(rate.Limit(rateLimit.TokensPerSecond), rateLimit.Burst))
	bridgeOracleEngine := bridgeoracle.NewEngine(reg)
	adminEngine := admin.NewEngine(selfAdmin, treasuryEngine, bridgeOracleEngine, reg)

	pauses := nativecommon.NewPauses()
	treasuryEngine.SetPauses(pauses)
	pegkeeperEngine.SetPauses(pauses)
	bridgeOracleEngine.SetPauses(pauses)
	adminEngine.SetPauses(pauses)

	treasuryEngine.SetEmitter(emitter)
	pegkeeperEngine.SetEmitter(emitter)
	bridgeOracleEngine.SetEmitter(emitter)
	adminEngine.SetEmitter(emitter)

	a := &app{
		ledger:       ledger.New(db),
		reg:          reg,
		pauses:       pauses,
		treasury:     treasuryEngine,
		pegkeeper:    pegkeeperEngine,
		bridgeOracle: bridgeOracleEngine,
		admin:        adminEngine,
		emitter:      emitter,
	}
	a.self.treasury = selfTreasury
	a.self.pegkeeper = selfPegkeeper
	a.self.bridgeOracle = selfBridgeOracle
	a.self.admin = selfAdmin
	return a, nil
}

// contractBytes derives a deterministic 20-byte identifier for a contract's
// own address from its name — the demo harness has no real deployment step,
// so each contract's "address" is just a stable digest of its role.
func contractBytes(name string) []byte {
	digest := ethcrypto.Keccak256([]byte("orbit.contract." + name))
	return digest[:20]
}

// withFrame runs fn inside a single ledger frame, pointing every engine's
// Store at that frame first. The ledger itself serializes calls (matching
// "the host ledger serializes all invocations" — SPEC_FULL.md §5), so
// repointing shared engine state ahead of each call is race-free.
func (a *app) withFrame(fn func() error) error {
	return a.ledger.Run(func(f *ledger.Frame) error {
		a.treasury.SetState(treasury.NewFrameStore(f))
		a.pegkeeper.SetState(pegkeeper.NewFrameStore(f))
		a.bridgeOracle.SetState(bridgeoracle.NewFrameStore(f))
		a.admin.SetState(admin.NewFrameStore(f))
		return fn()
	})
}

// bootstrap initializes the four contracts, points BridgeOracle at the
// demo upstream oracle, and seeds the bridge mappings and stablecoin
// onboarding list from a GenesisSeed, composing the same admin façade
// operations an operator would issue over HTTP. oracleAddr must already be
// registered in a.reg (see seedDemoCollaterals) before this runs, since
// BridgeOracle.SetOracle is called before any non-USD LastPrice/Decimals
// lookup a seeded stablecoin's pegged asset might need.
//
// Treasury and BridgeOracle each register the Admin façade's own address
// (a.self.admin) as their admin, not the operator key: every mutating
// Treasury/BridgeOracle call the façade exposes (new_stablecoin,
// update_pegkeeper, update_oracle, update_supply, ...) forwards using the
// façade's own identity as caller (native/admin/engine.go's e.self), so
// Treasury/BridgeOracle must trust that identity, not the human operator,
// as their registered admin — the operator's authority is checked one
// level up, by the façade's own requireAdmin. PegKeeper is the one
// contract the façade does not forward to, so it keeps the operator key as
// its direct admin.
func (a *app) bootstrap(seed *config.GenesisSeed, oracleAddr crypto.Address) error {
	adminKey, err := seed.AdminPrivateKey()
	if err != nil {
		return err
	}
	operator := adminKey.PubKey().Address()

	if err := a.withFrame(func() error {
		if err := a.treasury.Initialize(a.self.admin); err != nil {
			return err
		}
		if err := a.pegkeeper.Initialize(operator, a.self.treasury); err != nil {
			return err
		}
		if err := a.bridgeOracle.Initialize(a.self.admin); err != nil {
			return err
		}
		if err := a.admin.Initialize(operator, a.self.treasury, a.self.bridgeOracle); err != nil {
			return err
		}
		if err := a.bridgeOracle.SetOracle(a.self.admin, oracleAddr); err != nil {
			return err
		}
		return a.treasury.SetPegkeeper(a.self.admin, a.self.pegkeeper)
	}); err != nil {
		return fmt.Errorf("orbitd: bootstrap contracts: %w", err)
	}

	for _, bridge := range seed.Bridges {
		from, err := config.ParseAsset(bridge.From)
		if err != nil {
			return err
		}
		to, err := config.ParseAsset(bridge.To)
		if err != nil {
			return err
		}
		if err := a.withFrame(func() error {
			return a.bridgeOracle.AddAsset(a.self.admin, from, to)
		}); err != nil {
			return fmt.Errorf("orbitd: seed bridge %s->%s: %w", bridge.From, bridge.To, err)
		}
	}

	for _, coin := range seed.Stablecoins {
		tokenAddr, err := crypto.DecodeAddress(coin.Token)
		if err != nil {
			return fmt.Errorf("orbitd: seed stablecoin token: %w", err)
		}
		poolAddr, err := crypto.DecodeAddress(coin.BlendPool)
		if err != nil {
			return fmt.Errorf("orbitd: seed stablecoin pool: %w", err)
		}
		peggedTo, err := config.ParseAsset(coin.PeggedTo)
		if err != nil {
			return err
		}
		initialSupply, err := config.ParseAmount(coin.InitialSupply)
		if err != nil {
			return err
		}
		if err := a.withFrame(func() error {
			return a.admin.NewStablecoin(operator, tokenAddr, peggedTo, poolAddr, initialSupply)
		}); err != nil {
			return fmt.Errorf("orbitd: onboard stablecoin %s: %w", coin.Token, err)
		}
	}

	return nil
}

// seedDemoCollaterals registers a lending pool, AMM router, and upstream
// oracle against the registry so a freshly booted demo instance has
// something for the genesis stablecoins to actually interact with, without
// requiring an operator to separately stand up live implementations.
func (a *app) seedDemoCollaterals(poolAddr, routerAddr, oracleAddr, oracleSigner crypto.Address) {
	pool := mock.NewPool(poolAddr)
	poolAdmin := mock.NewPoolAdmin(pool, nil)
	a.reg.registerPool(poolAddr, pool, poolAdmin)

	router := mock.NewRouter(30)
	a.reg.registerRouter(routerAddr, router)

	oracle := mock.NewUpstreamOracle(oracleSigner, 7)
	a.reg.registerOracle(oracleAddr, oracle)
}
