package obfs

import (
	"bytes"
	"fmt"
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a key with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and reset the keystream position to its initial value.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a key with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and reset the keystream position to its initial value.
	Reset(target io.Writer)
}

// keystream tracks the running character index so every byte passing through is masked with key + position.
type keystream struct {
	key  byte
	init int
	pos  int
}

func newKeystream(key byte, offset ...int) (*keystream, error) {
	s := &keystream{
		key: key,
	}
	if len(offset) > 0 {
		if offset[0] < 0 {
			return nil, fmt.Errorf("offset %d may not be negative", offset[0])
		}
		s.init = offset[0]
		s.pos = s.init
	}
	return s, nil
}

func (s *keystream) screen(b byte) byte {
	b = mask(b, s.key, s.pos)
	s.pos++
	return b
}

func (s *keystream) reset() {
	s.pos = s.init
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	scr    *keystream
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	for i := 0; i < n; i++ {
		out[i] = r.scr.screen(out[i])
	}
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.scr.reset()
}

// NewReader constructs a new Reader that masks all bytes read with the key + index stream, starting at offset.
func NewReader(r io.Reader, key byte, offset ...int) (Reader, error) {
	scr, err := newKeystream(key, offset...)
	if err != nil {
		return nil, err
	}
	xReader := &reader{
		source: r,
		scr:    scr,
	}
	return xReader, nil
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	scr    *keystream
}

// NewWriter constructs a new Writer that masks all bytes written with the key + index stream, starting at offset.
func NewWriter(target io.Writer, key byte, offset ...int) (Writer, error) {
	scr, err := newKeystream(key, offset...)
	if err != nil {
		return nil, err
	}
	xWriter := &writer{
		target: target,
		scr:    scr,
	}
	return xWriter, nil
}

func (w *writer) Write(in []byte) (n int, err error) {
	var buf bytes.Buffer
	for i := 0; i < len(in); i++ {
		buf.WriteByte(w.scr.screen(in[i]))
	}
	return w.target.Write(buf.Bytes())
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.scr.reset()
}
