package savefile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Encode streams a save produced by fn into w.
func Encode(w io.Writer, version int, fn func(Writer)) error {
	sw := NewStreamWriter(w, version)
	fn(sw)
	return sw.Close()
}

// Decode reads a save from r. meta is installed on the reader before fn
// runs.
func Decode(r io.Reader, version int, meta map[string]any, fn func(Reader)) error {
	sr, err := NewStreamReader(r, version)
	if err != nil {
		return err
	}
	for k, v := range meta {
		sr.SetMeta(k, v)
	}
	fn(sr)
	return sr.Close()
}

// Marshal encodes into memory.
func Marshal(version int, fn func(Writer)) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, version, fn); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes from memory.
func Unmarshal(data []byte, version int, meta map[string]any, fn func(Reader)) error {
	return Decode(bytes.NewReader(data), version, meta, fn)
}

// Save writes a save file atomically: the data goes to a temp file in the
// same directory which is renamed over path only when fully written.
func Save(path string, version int, fn func(Writer)) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = Encode(tmp, version, fn); err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename save: %w", err)
	}
	return nil
}

// Load opens path and decodes it.
func Load(path string, version int, meta map[string]any, fn func(Reader)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open save: %w", err)
	}
	defer f.Close()
	if err := Decode(f, version, meta, fn); err != nil {
		return fmt.Errorf("decode save %s: %w", path, err)
	}
	return nil
}
