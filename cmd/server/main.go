// spire-server serves the map screen over SSH. Every SSH user name owns one
// saved run, so reconnecting resumes the climb. Build:
//
//	go build -o spire-server ./cmd/server
//
// Usage:
//
//	./spire-server [--port 2222] [--key server_host_key]
//
// Connect with:
//
//	ssh -p 2222 alice@localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"

	gossh "github.com/gliderlabs/ssh"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"

	"spire-run/internal/config"
	"spire-run/internal/game"
	"spire-run/internal/logger"
	"spire-run/internal/run"
	internalssh "spire-run/internal/ssh"
	"spire-run/internal/store"
)

// maxNameBytes bounds run ids derived from SSH user names.
const maxNameBytes = 32

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	port := flag.Int("port", cfg.SSHPort, "SSH server port")
	keyFile := flag.String("key", cfg.SSHHostKey, "Path to the PEM-encoded host key (auto-generated if absent)")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: cfg.LogPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer st.Close()

	runs := run.NewManager(st, log, run.Options{LogDir: cfg.DataDir, Seed: cfg.Seed})
	sessions := newSessionRegistry()

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, runs, sessions, log)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: the user name only selects which run to load.
		HostSigners: []gossh.Signer{loadOrCreateHostKey(*keyFile, log)},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("ssh shutdown", zap.Error(err))
		}
	}()

	log.Info("ssh server listening", zap.Int("port", *port), zap.String("store", cfg.StoreBackend))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		log.Fatal("ssh server", zap.Error(err))
	}
}

// sessionRegistry keeps one live session per run id.
type sessionRegistry struct {
	mu     sync.Mutex
	active map[string]bool
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{active: make(map[string]bool)}
}

// acquire claims id, reporting false if another session already holds it.
func (r *sessionRegistry) acquire(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active[id] {
		return false
	}
	r.active[id] = true
	return true
}

func (r *sessionRegistry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, id)
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the game so the session stays open.
func handleSession(s gossh.Session, runs *run.Manager, sessions *sessionRegistry, log *zap.Logger) {
	runID := sanitizeName(s.User())
	if runID == "" {
		runID = "guest"
	}
	log = log.With(zap.String("runID", runID), zap.String("remote", s.RemoteAddr().String()))

	if !sessions.acquire(runID) {
		fmt.Fprintf(s, "Run %q is already being played from another session.\n", runID)
		return
	}
	defer sessions.release(runID)

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	if err != nil {
		log.Warn("terminal setup failed", zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	log.Info("session opened")
	if err := game.New(screen, runs, runID, log).Run(s.Context()); err != nil {
		log.Error("game ended with error", zap.Error(err))
		fmt.Fprintf(s, "Game error: %v\n", err)
	}
	log.Info("session closed")
}

// sanitizeName turns an SSH user name into a run id: control and space
// characters are dropped and the result is cut to maxNameBytes without
// splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == unicode.ReplacementChar {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *zap.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", zap.String("path", path))
			return signer
		}
	}

	log.Info("generating ed25519 host key", zap.String("path", path))
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal("generate host key", zap.Error(err))
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatal("create signer", zap.Error(err))
	}
	if block, err := xssh.MarshalPrivateKey(key, "spire-run server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			log.Warn("host key not saved", zap.Error(err))
		}
	}
	return signer
}
