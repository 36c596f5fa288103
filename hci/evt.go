package hci

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

var errIndex = errors.New("index error")

// Event is an HCI Event Packet without its packet type byte.
type Event []byte

func (e Event) CodeWErr() (uint8, error) {
	return getByte(e, 0, 0)
}

func (e Event) ParametersWErr() ([]byte, error) {
	n, err := getByte(e, 1, 0)
	if err != nil {
		return nil, err
	}
	if int(n) == 0 {
		return []byte{}, nil
	}
	return getBytes(e, 2, int(n))
}

type DisconnectionComplete []byte

func (e DisconnectionComplete) StatusWErr() (uint8, error) {
	return getByte(e, 0, 0xff)
}

func (e DisconnectionComplete) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(e, 1, 0xffff)
}

func (e DisconnectionComplete) ReasonWErr() (uint8, error) {
	return getByte(e, 3, 0)
}

type CommandComplete []byte

func (e CommandComplete) CommandOpcodeWErr() (uint16, error) {
	return getUint16LE(e, 1, 0xffff)
}

func (e CommandComplete) ReturnParametersWErr() ([]byte, error) {
	return getBytes(e, 3, -1)
}

// LEConnectionComplete covers both the legacy and the enhanced subevent;
// the fields read here sit at the same offsets in each.
type LEConnectionComplete []byte

func (e LEConnectionComplete) SubeventCodeWErr() (uint8, error) {
	return getByte(e, 0, 0xff)
}

func (e LEConnectionComplete) StatusWErr() (uint8, error) {
	return getByte(e, 1, 0xff)
}

func (e LEConnectionComplete) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(e, 2, 0xffff)
}

func (e LEConnectionComplete) RoleWErr() (uint8, error) {
	return getByte(e, 4, 0xff)
}

func (e LEConnectionComplete) PeerAddressWErr() ([]byte, error) {
	return getBytes(e, 6, 6)
}

func getByte(b []byte, i int, def byte) (byte, error) {
	bb, err := getBytes(b, i, 1)
	if err != nil {
		return def, err
	}
	return bb[0], nil
}

//get or default
func getUint16LE(b []byte, i int, def uint16) (uint16, error) {
	bb, err := getBytes(b, i, 2)
	if err != nil {
		return def, err
	}
	return binary.LittleEndian.Uint16(bb), nil
}

func getBytes(bytes []byte, start int, count int) ([]byte, error) {
	if bytes == nil || start >= len(bytes) {
		return nil, errIndex
	}

	if count < 0 {
		return bytes[start:], nil
	}

	end := start + count
	//end is non-inclusive
	if end > len(bytes) {
		return nil, errIndex
	}

	return bytes[start:end], nil
}
