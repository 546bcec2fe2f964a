package sshtty

import (
	"bytes"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is a session without a pty that records output.
type fakeSession struct {
	gossh.Session
	in, out bytes.Buffer
	environ []string
}

func (s *fakeSession) Read(b []byte) (int, error)  { return s.in.Read(b) }
func (s *fakeSession) Write(b []byte) (int, error) { return s.out.Write(b) }
func (s *fakeSession) Environ() []string           { return s.environ }

func (s *fakeSession) Pty() (gossh.Pty, <-chan gossh.Window, bool) {
	return gossh.Pty{}, nil, false
}

func TestTerm(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		want    string
	}{
		{"missing", nil, DefaultTerm},
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"unknown", []string{"TERM=evil-term"}, DefaultTerm},
		{"traversal", []string{"TERM=../../../etc/passwd"}, DefaultTerm},
		{"empty", []string{"TERM="}, DefaultTerm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Term(tt.environ))
		})
	}
}

func TestTtyPassesBytes(t *testing.T) {
	s := &fakeSession{}
	s.in.WriteString("k")
	tty := NewTty(s, gossh.Window{Width: 80, Height: 24}, nil)

	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "k", string(buf[:n]))

	_, err = tty.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", s.out.String())
}

func TestTtyFollowsResizes(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := NewTty(&fakeSession{}, gossh.Window{Width: 80, Height: 24}, winCh)

	size, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, 80, size.Width)
	assert.Equal(t, 24, size.Height)

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-resized:
	case <-time.After(time.Second):
		t.Fatal("resize callback not called")
	}
	size, err = tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, 120, size.Width)
	assert.Equal(t, 40, size.Height)
	close(winCh)
}

func TestNewScreenNeedsPty(t *testing.T) {
	_, err := NewScreen(&fakeSession{})
	assert.ErrorIs(t, err, ErrNoPty)
}
