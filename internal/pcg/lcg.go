// Package pcg holds the deterministic random primitives shared by the
// dungeon builders, monster AI and the turn engine.
package pcg

import "math/rand"

const (
	lcgMul = 1103515245
	lcgInc = 12345
	lcgMod = 1 << 31
)

// LCG is a linear congruential rand.Source with glibc parameters. Its whole
// state is one integer, so a game can save it and resume the same stream.
type LCG struct {
	state uint32
}

var _ rand.Source = (*LCG)(nil)

// NewLCG returns a source seeded with seed.
func NewLCG(seed int64) *LCG {
	l := &LCG{}
	l.Seed(seed)
	return l
}

// New wraps a freshly seeded LCG in a *rand.Rand.
func New(seed int64) (*rand.Rand, *LCG) {
	src := NewLCG(seed)
	return rand.New(src), src
}

// Seed resets the generator.
func (l *LCG) Seed(seed int64) {
	l.state = uint32(uint64(seed) % lcgMod)
}

func (l *LCG) next() int64 {
	l.state = uint32((uint64(l.state)*lcgMul + lcgInc) % lcgMod)
	return int64(l.state)
}

// Int63 composes three 31-bit draws into a 63-bit value.
func (l *LCG) Int63() int64 {
	hi := l.next()
	mid := l.next()
	lo := l.next()
	return hi<<32 | mid<<1 | lo>>30
}

// State returns the raw generator state.
func (l *LCG) State() int64 { return int64(l.state) }

// SetState restores a value obtained from State.
func (l *LCG) SetState(s int64) { l.state = uint32(uint64(s) % lcgMod) }
