package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"apptrack-engine/internal/config"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/httpapi"
	"apptrack-engine/internal/store"
	"apptrack-engine/internal/tracker"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatal("engine exited", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	// Data dir: env if provided (the shell app passes one), else local folder.
	dataDir := os.Getenv("APPTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// One process owns the snapshot blob; a second instance would clobber it.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire data dir lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine instance is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			return cfg, fmt.Errorf("config validation failed: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "apptrack.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	snapshots := store.NewSnapshots(store.NewKV(db.Pool), log)
	trk := tracker.New(snapshots, log)

	// Single load per process, before any derived state is served.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	trk.Load(ctx)

	hub := events.NewHub()

	mux := httpapi.NewMux(httpapi.Deps{
		Tracker:     trk,
		Hub:         hub,
		Log:         log,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog(log),
		httpapi.Recover(log),
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("db", dbPath),
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}
