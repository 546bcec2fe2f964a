// Package sshtty serves tcell screens over gliderlabs/ssh sessions.
package sshtty

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPty is returned for sessions opened without a terminal.
var ErrNoPty = errors.New("session has no pty")

// DefaultTerm is used when the client does not send TERM or sends one
// outside AllowedTerms.
const DefaultTerm = "xterm-256color"

// AllowedTerms are the TERM values a client may pick. The value selects a
// terminfo entry, so unknown names are refused.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

// Tty implements tcell.Tty on top of one SSH session.
type Tty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	onSize func()
	once   sync.Once
}

// NewTty wraps s. window is the initial size; winCh delivers resizes.
func NewTty(s gossh.Session, window gossh.Window, winCh <-chan gossh.Window) *Tty {
	return &Tty{session: s, window: window, winCh: winCh}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }

func (t *Tty) Close() error { return t.session.Close() }

func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts following window changes. Only the
// first call starts the follower.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()
	t.once.Do(func() { go t.follow() })
}

func (t *Tty) follow() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.onSize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

// Term returns the session's TERM if allowed, DefaultTerm otherwise.
func Term(environ []string) string {
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && AllowedTerms[v] {
			return v
		}
	}
	return DefaultTerm
}

// termMu serialises the TERM swap around terminfo lookup, which reads the
// process environment.
var termMu sync.Mutex

// NewScreen builds an initialised screen drawing on the session's pty.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPty
	}
	term := Term(s.Environ())
	if AllowedTerms[pty.Term] {
		term = pty.Term
	}

	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(NewTty(s, pty.Window, winCh))
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

var _ tcell.Tty = (*Tty)(nil)
