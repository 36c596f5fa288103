package attmon

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rigado/attmon/sliceops"
)

// Addr is a Bluetooth device address as it appears in persisted attribute
// database paths, "aa:bb:cc:dd:ee:ff".
type Addr interface {
	String() string
	Bytes() []byte
}

// NewAddr creates an Addr from its string form.
func NewAddr(s string) Addr {
	return addr(strings.ToUpper(s))
}

// AddrFromWire converts the 6 little-endian address bytes carried in HCI
// events into an Addr.
func AddrFromWire(b []byte) Addr {
	if len(b) != 6 {
		return nil
	}

	be := sliceops.SwapBuf(b)
	parts := make([]string, len(be))
	for i, v := range be {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return addr(strings.Join(parts, ":"))
}

type addr string

func (a addr) String() string {
	return string(a)
}

// Bytes returns the address in display (big-endian) order, nil if the
// string is not a valid address.
func (a addr) Bytes() []byte {
	out, err := hex.DecodeString(strings.Replace(a.String(), ":", "", -1))
	if err != nil {
		GetLogger().Debugf("error decoding address %v: %v", a.String(), err)
		return nil
	}

	return out
}
