// Command orbitd is the demo host-ledger process: it boots the Treasury,
// PegKeeper, BridgeOracle, and Admin contract engines against a single
// ledger, seeds them from a genesis TOML file, and exposes every public
// operation over a chi-routed HTTP API plus a websocket event feed —
// standing in for the consensus node a production deployment of these
// contracts would run inside.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"gorm.io/gorm"

	"orbit/config"
	"orbit/core/events"
	"orbit/crypto"
	"orbit/eventlog"
	"orbit/observability/logging"
	telemetry "orbit/observability/otel"
	"orbit/storage"
)

func main() {
	var cfgPath, seedPath string
	flag.StringVar(&cfgPath, "config", "orbitd.yaml", "path to orbitd configuration")
	flag.StringVar(&seedPath, "genesis", "genesis.toml", "path to the genesis seed file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbitd: load config: %v\n", err)
		os.Exit(1)
	}

	env := cfg.Logging.Env
	if env == "" {
		env = strings.TrimSpace(os.Getenv("ORBIT_ENV"))
	}

	logger := logging.Setup(logging.Config{
		Service:    "orbitd",
		Env:        env,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	shutdownTelemetry, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName: "orbitd",
		Environment: env,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		Headers:     cfg.Telemetry.Headers,
		Traces:      cfg.Telemetry.Enabled,
	})
	if err != nil {
		logger.Error("failed to initialise telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = shutdownTelemetry(context.Background())
	}()

	seed, err := config.LoadGenesisSeed(seedPath)
	if err != nil {
		logger.Error("failed to load genesis seed", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	auditDB, err := openEventLogDB(cfg.EventLog)
	if err != nil {
		logger.Error("failed to open event log", "error", err)
		os.Exit(1)
	}
	if err := eventlog.AutoMigrate(auditDB); err != nil {
		logger.Error("failed to migrate event log", "error", err)
		os.Exit(1)
	}
	auditSink, err := eventlog.NewSink(auditDB, logger)
	if err != nil {
		logger.Error("failed to initialise event log sink", "error", err)
		os.Exit(1)
	}

	hub := newEventHub()
	emitter := events.Multi{Emitters: []events.Emitter{hub, auditSink}}

	orbitApp, err := newApp(db, emitter, cfg.RateLimit)
	if err != nil {
		logger.Error("failed to construct application", "error", err)
		os.Exit(1)
	}

	poolAddr := demoAddress("demo-pool")
	routerAddr := demoAddress("demo-router")
	oracleAddr := demoAddress("demo-oracle")
	oracleSigner := demoAddress("demo-oracle-signer")
	orbitApp.seedDemoCollaterals(poolAddr, routerAddr, oracleAddr, oracleSigner)

	if err := orbitApp.bootstrap(seed, oracleAddr); err != nil {
		logger.Error("failed to bootstrap contracts", "error", err)
		os.Exit(1)
	}

	auth := newAdminAuth(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	auth.SetLogger(logger)
	audit := newAuditLog(auditDB)
	httpServer := newServer(orbitApp, auth, hub, audit)

	srv := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      httpServer.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		logger.Error("listen failed", "error", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("listening", "address", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func openDatabase(dataDir string) (storage.Database, error) {
	if strings.TrimSpace(dataDir) == "" || dataDir == ":memory:" {
		return storage.NewMemDB(), nil
	}
	return storage.NewLevelDB(dataDir)
}

// openEventLogDB opens the configured event-log backend, defaulting to an
// embedded SQLite backend when no driver is configured, stored in
// orbitd-events.db relative to the working directory when no DSN is set —
// matching cfg.EventLog.Driver's ""/"sqlite"/"postgres"
// validation in config.Load.
func openEventLogDB(cfg config.EventLog) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return eventlog.OpenPostgres(cfg.DSN)
	default:
		dsn := cfg.DSN
		if strings.TrimSpace(dsn) == "" {
			dsn = "orbitd-events.db"
		}
		return eventlog.OpenSQLite(dsn)
	}
}

// demoAddress derives a deterministic 20-byte address for a named demo
// collaborator (the seeded lending pool, AMM router, and upstream oracle)
// so a fresh instance has something for the genesis stablecoins to
// interact with without an operator wiring real addresses by hand.
func demoAddress(name string) crypto.Address {
	digest := ethcrypto.Keccak256([]byte("orbit.demo." + name))
	return crypto.MustNewAddress(crypto.OrbitPrefix, digest[:20])
}
