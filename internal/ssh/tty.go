// Package ssh adapts gliderlabs SSH sessions into tcell screens so each
// connected player gets a full-screen terminal client.
package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned by NewScreen when the client did not request a PTY.
var ErrNoPTY = errors.New("session has no pty")

const defaultTerm = "xterm-256color"

// allowedTerms lists the terminal types a client may select. TERM is handed
// to terminfo lookup, so anything else falls back to defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// sessionTty is a tcell.Tty reading keys from and writing frames to one SSH
// session.
type sessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	resize func()
	watch  sync.Once
}

func newSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *sessionTty {
	return &sessionTty{session: s, window: pty.Window, winCh: winCh}
}

func (t *sessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *sessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *sessionTty) Close() error                { return t.session.Close() }

// The channel is owned by the server handler, so there is nothing to
// start, stop or flush.
func (t *sessionTty) Start() error { return nil }
func (t *sessionTty) Stop() error  { return nil }
func (t *sessionTty) Drain() error { return nil }

func (t *sessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize records cb and follows window-change requests until the
// session ends.
func (t *sessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resize = cb
	t.mu.Unlock()

	t.watch.Do(func() {
		go func() {
			for win := range t.winCh {
				t.mu.Lock()
				t.window = win
				cb := t.resize
				t.mu.Unlock()
				if cb != nil {
					cb()
				}
			}
		}()
	})
}

// termMu serialises the TERM override tcell reads while building a screen.
var termMu sync.Mutex

// NewScreen builds and initialises a tcell screen drawing to s. The terminal
// type comes from the pty request or the client's TERM, falling back to
// xterm-256color when neither is allowed.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}

	term := sessionTerm(pty.Term, s.Environ())

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(newSessionTty(s, pty, winCh))
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal %q: %w", term, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

func sessionTerm(ptyTerm string, environ []string) string {
	if allowedTerms[ptyTerm] {
		return ptyTerm
	}
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[v] {
			return v
		}
	}
	return defaultTerm
}
