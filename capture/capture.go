// Package capture reads HCI traffic from capture files: pcap and pcapng
// with Bluetooth link types, and btsnoop.
package capture

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/attmon"
)

// Record is one HCI packet.
type Record struct {
	Index     uint16 // controller, 0 when the format does not say
	Type      uint8  // HCI packet type
	In        bool   // sent by the controller
	Data      []byte // packet without its type byte
	Timestamp time.Time

	// NewIndex is set instead of Data when a controller is announced.
	NewIndex attmon.Addr
}

// Reader yields the records of a capture. Next returns io.EOF at the end.
type Reader interface {
	Next() (Record, error)
}

var ErrUnknownFormat = errors.New("unknown capture format")

var btsnoopMagic = []byte("btsnoop\x00")

// Open sniffs the format of r and returns a reader for it.
func Open(r io.Reader) (Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(8)
	if err != nil {
		return nil, errors.Wrap(err, "reading capture header")
	}

	if bytes.Equal(magic, btsnoopMagic) {
		return newBtsnoopReader(br)
	}

	switch binary.LittleEndian.Uint32(magic) {
	case 0xa1b2c3d4, 0xd4c3b2a1, 0xa1b23c4d, 0x4d3cb2a1:
		return newPcapReader(br)
	case 0x0a0d0d0a:
		return newPcapngReader(br)
	}
	return nil, ErrUnknownFormat
}
