package savefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rogue-engine/internal/geom"
)

const (
	sep     = '\x00'
	trailer = "EOF"
)

// StreamWriter writes NUL-terminated text tokens. The first token is the
// version; Close appends the EOF trailer.
type StreamWriter struct {
	w   *bufio.Writer
	err error
}

// NewStreamWriter starts a stream and writes the version token.
func NewStreamWriter(w io.Writer, version int) *StreamWriter {
	sw := &StreamWriter{w: bufio.NewWriter(w)}
	sw.WriteInt(version)
	return sw
}

func (s *StreamWriter) token(v string) {
	if s.err != nil {
		return
	}
	if strings.IndexByte(v, sep) >= 0 {
		s.err = fmt.Errorf("%w: token contains NUL", ErrCorrupt)
		return
	}
	if _, err := s.w.WriteString(v); err != nil {
		s.err = err
		return
	}
	if err := s.w.WriteByte(sep); err != nil {
		s.err = err
	}
}

func (s *StreamWriter) WriteInt(v int)       { s.token(strconv.Itoa(v)) }
func (s *StreamWriter) WriteString(v string) { s.token(v) }

func (s *StreamWriter) WriteBool(v bool) {
	if v {
		s.token("1")
	} else {
		s.token("0")
	}
}

func (s *StreamWriter) WritePoint(p geom.Point) {
	s.WriteInt(p.X)
	s.WriteInt(p.Y)
}

func (s *StreamWriter) WriteSize(sz geom.Size) {
	s.WriteInt(sz.W)
	s.WriteInt(sz.H)
}

func (s *StreamWriter) Err() error { return s.err }

func (s *StreamWriter) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Close writes the trailer and flushes. It returns the sticky error if any.
func (s *StreamWriter) Close() error {
	s.token(trailer)
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

// StreamReader reads what StreamWriter wrote.
type StreamReader struct {
	r       *bufio.Reader
	version int
	meta    map[string]any
	err     error
}

// NewStreamReader reads the version token and rejects any other version
// than want.
func NewStreamReader(r io.Reader, want int) (*StreamReader, error) {
	sr := &StreamReader{r: bufio.NewReader(r), meta: map[string]any{}}
	sr.version = sr.ReadInt()
	if sr.err != nil {
		return nil, sr.err
	}
	if sr.version != want {
		return nil, &VersionError{Got: sr.version, Want: want}
	}
	return sr, nil
}

func (s *StreamReader) token() string {
	if s.err != nil {
		return ""
	}
	v, err := s.r.ReadString(sep)
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.err = ErrTruncated
		} else {
			s.err = err
		}
		return ""
	}
	return v[:len(v)-1]
}

func (s *StreamReader) ReadInt() int {
	tok := s.token()
	if s.err != nil {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		s.Fail(fmt.Errorf("%w: int token %q", ErrCorrupt, tok))
		return 0
	}
	return v
}

func (s *StreamReader) ReadBool() bool {
	tok := s.token()
	if s.err != nil {
		return false
	}
	switch tok {
	case "1":
		return true
	case "0":
		return false
	default:
		s.Fail(fmt.Errorf("%w: bool token %q", ErrCorrupt, tok))
		return false
	}
}

func (s *StreamReader) ReadString() string { return s.token() }

func (s *StreamReader) ReadPoint() geom.Point {
	x := s.ReadInt()
	return geom.Pt(x, s.ReadInt())
}

func (s *StreamReader) ReadSize() geom.Size {
	w := s.ReadInt()
	return geom.Sz(w, s.ReadInt())
}

func (s *StreamReader) Version() int { return s.version }

func (s *StreamReader) Meta(key string) any { return s.meta[key] }

func (s *StreamReader) SetMeta(key string, v any) { s.meta[key] = v }

func (s *StreamReader) Err() error { return s.err }

func (s *StreamReader) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Close checks for the trailer and returns the sticky error if any.
func (s *StreamReader) Close() error {
	if tok := s.token(); s.err == nil && tok != trailer {
		s.err = fmt.Errorf("%w: expected %s, got %q", ErrCorrupt, trailer, tok)
	}
	return s.err
}
