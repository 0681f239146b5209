// spire-run plays a run in the local terminal. Progress is saved after every
// move, so quitting and relaunching resumes the climb.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"spire-run/internal/config"
	"spire-run/internal/game"
	"spire-run/internal/logger"
	"spire-run/internal/run"
	"spire-run/internal/store"
)

func main() {
	if err := runLocal(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runLocal() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	runID := flag.String("run", "local", "Name of the saved run to play")
	seed := flag.Int64("seed", cfg.Seed, "Map seed for new runs (0 picks one at random)")
	flag.Parse()

	// The screen owns stderr, so logs go to a file unless told otherwise.
	logPath := cfg.LogPath
	if logPath == "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		logPath = filepath.Join(cfg.DataDir, "spire-run.log")
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: logPath})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer st.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	runs := run.NewManager(st, log, run.Options{LogDir: cfg.DataDir, Seed: *seed})
	log.Info("local session", zap.String("runID", *runID), zap.String("store", cfg.StoreBackend))
	return game.New(screen, runs, *runID, log).Run(ctx)
}
