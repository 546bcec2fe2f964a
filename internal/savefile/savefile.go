// Package savefile defines the ordered read/write contract entities use to
// persist themselves, plus a NUL-separated token stream implementing it.
//
// Readers and writers carry a sticky error: after the first failure every
// further call is a no-op returning zero values, and Err reports the cause.
// Nested loaders therefore check Err once at the end instead of after each
// field.
package savefile

import (
	"errors"
	"fmt"

	"rogue-engine/internal/geom"
)

var (
	// ErrVersion is wrapped by errors about unsupported save versions.
	ErrVersion = errors.New("unsupported save version")
	// ErrTruncated means the stream ended before the EOF trailer.
	ErrTruncated = errors.New("save stream truncated")
	// ErrCorrupt means a token could not be parsed as the expected type.
	ErrCorrupt = errors.New("save stream corrupt")
)

// Writer receives primitive values in save order.
type Writer interface {
	WriteInt(v int)
	WriteBool(v bool)
	WriteString(v string)
	WritePoint(p geom.Point)
	WriteSize(s geom.Size)
	Err() error
	Fail(err error)
}

// Reader yields primitive values in the order they were written. Meta is a
// side channel that supplies load-time context such as type registries.
type Reader interface {
	ReadInt() int
	ReadBool() bool
	ReadString() string
	ReadPoint() geom.Point
	ReadSize() geom.Size
	Version() int
	Meta(key string) any
	SetMeta(key string, v any)
	Err() error
	Fail(err error)
}

// VersionError reports a save written by an incompatible build.
type VersionError struct {
	Got, Want int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported save version: %d (want %d)", e.Got, e.Want)
}

func (e *VersionError) Unwrap() error { return ErrVersion }

// WriteList writes len(items) followed by each item.
func WriteList[T any](w Writer, items []T, each func(Writer, T)) {
	w.WriteInt(len(items))
	for _, it := range items {
		each(w, it)
	}
}

// ReadList reads a list written by WriteList. It stops early on error.
func ReadList[T any](r Reader, each func(Reader) T) []T {
	n := r.ReadInt()
	if n < 0 {
		r.Fail(fmt.Errorf("%w: negative list length %d", ErrCorrupt, n))
	}
	if r.Err() != nil || n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	for range n {
		v := each(r)
		if r.Err() != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// WriteMatrix writes the matrix size followed by its cells row by row.
func WriteMatrix[T any](w Writer, m *geom.Matrix[T], each func(Writer, T)) {
	w.WriteSize(m.Size())
	for _, v := range m.Cells() {
		each(w, v)
	}
}

// ReadMatrix reads a matrix written by WriteMatrix.
func ReadMatrix[T any](r Reader, each func(Reader) T) *geom.Matrix[T] {
	size := r.ReadSize()
	if size.W < 0 || size.H < 0 {
		r.Fail(fmt.Errorf("%w: negative matrix size %v", ErrCorrupt, size))
	}
	if r.Err() != nil {
		return nil
	}
	var zero T
	m := geom.NewMatrix(size, zero)
	cells := m.Cells()
	for i := range cells {
		cells[i] = each(r)
		if r.Err() != nil {
			return nil
		}
	}
	return m
}

// WriteOptional writes a presence flag, then the value when present.
func WriteOptional[T any](w Writer, v T, present bool, each func(Writer, T)) {
	w.WriteBool(present)
	if present {
		each(w, v)
	}
}

// ReadOptional reads a value written by WriteOptional.
func ReadOptional[T any](r Reader, each func(Reader) T) (T, bool) {
	var zero T
	if !r.ReadBool() || r.Err() != nil {
		return zero, false
	}
	return each(r), r.Err() == nil
}
