// Package frame provides a bounds-checked little-endian read cursor over a
// single PDU.
package frame

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned when a read needs more bytes than remain.
var ErrTruncated = errors.New("truncated")

// Frame is a read cursor over the remaining bytes of a PDU plus the
// transport metadata it arrived with. Reads never look past the declared
// size and a failed read leaves the cursor where it was.
type Frame struct {
	Conn uint16
	In   bool
	CID  uint16

	b []byte
}

// New returns a frame over the first size bytes of b. If b holds fewer
// than size bytes, the frame covers only what is there.
func New(conn uint16, in bool, cid uint16, b []byte, size int) *Frame {
	if size < 0 {
		size = 0
	}
	if size > len(b) {
		size = len(b)
	}
	return &Frame{Conn: conn, In: in, CID: cid, b: b[:size:size]}
}

// Len is the number of unread bytes.
func (f *Frame) Len() int { return len(f.b) }

// Bytes returns the unread bytes without consuming them.
func (f *Frame) Bytes() []byte { return f.b }

// Clone returns an independent cursor at the same position.
func (f *Frame) Clone() *Frame {
	c := *f
	return &c
}

// Truncate returns a clone that can see at most n of the remaining bytes.
func (f *Frame) Truncate(n int) *Frame {
	c := f.Clone()
	if n >= 0 && n < len(c.b) {
		c.b = c.b[:n:n]
	}
	return c
}

// Sub consumes n bytes and returns them as an isolated frame carrying the
// same metadata.
func (f *Frame) Sub(n int) (*Frame, error) {
	b, err := f.Pull(n)
	if err != nil {
		return nil, err
	}
	return &Frame{Conn: f.Conn, In: f.In, CID: f.CID, b: b}, nil
}

// Pull consumes n bytes.
func (f *Frame) Pull(n int) ([]byte, error) {
	if n < 0 || n > len(f.b) {
		return nil, ErrTruncated
	}
	b := f.b[:n:n]
	f.b = f.b[n:]
	return b, nil
}

func (f *Frame) U8() (uint8, error) {
	b, err := f.Pull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (f *Frame) LE16() (uint16, error) {
	b, err := f.Pull(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (f *Frame) LE24() (uint32, error) {
	b, err := f.Pull(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (f *Frame) LE32() (uint32, error) {
	b, err := f.Pull(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
