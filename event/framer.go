// Package event decodes the Hyprland event-socket notification stream.
package event

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultBufferSize bounds a single event line; Hyprland never emits lines
// anywhere near this long unless a window title is pathological.
const DefaultBufferSize = 4096

// ErrLineTooLong reports a single line exceeding the framer's capacity.
// Recovery requires a framer with a larger buffer.
var ErrLineTooLong = errors.New("event line exceeds framer buffer capacity")

// Framer extracts newline-delimited lines from a byte stream using one
// fixed-capacity buffer. Returned slices alias that buffer and are only
// valid until the next ReadLine or ConsumeLine call.
type Framer struct {
	r     io.Reader
	buf   []byte
	start int
	end   int
}

// NewFramer wraps r with the default buffer capacity.
func NewFramer(r io.Reader) *Framer {
	return NewFramerSize(r, DefaultBufferSize)
}

// NewFramerSize wraps r with an explicit buffer capacity.
func NewFramerSize(r io.Reader, size int) *Framer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Framer{r: r, buf: make([]byte, size)}
}

// ReadLine returns the next line without its delimiter and without consuming
// it: calling ReadLine again yields the same line. Blocks on the underlying
// reader while no complete line is buffered. Returns io.EOF once the peer
// closes with no buffered line remaining.
func (f *Framer) ReadLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(f.buf[f.start:f.end], '\n'); i >= 0 {
			return f.buf[f.start : f.start+i], nil
		}

		if f.end == len(f.buf) {
			if f.start == 0 {
				return nil, ErrLineTooLong
			}
			f.compact()
			continue
		}

		n, err := f.r.Read(f.buf[f.end:])
		f.end += n
		if n > 0 {
			// Rescan before acting on any error paired with data.
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Peer closed; a partial tail without a delimiter is not a line.
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read event socket: %w", err)
		}
	}
}

// ConsumeLine returns the next line and advances past it and its delimiter.
func (f *Framer) ConsumeLine() ([]byte, error) {
	line, err := f.ReadLine()
	if err != nil {
		return nil, err
	}
	f.start += len(line) + 1
	return line, nil
}

// compact shifts the unconsumed region to the front of the buffer, freeing
// trailing capacity for the next read.
func (f *Framer) compact() {
	n := copy(f.buf, f.buf[f.start:f.end])
	f.start = 0
	f.end = n
}
