package attmon

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rigado/attmon/sliceops"
)

// A UUID is an attribute type, kept in little-endian wire order.
type UUID []byte

// UUID16 converts a uint16 (such as 0x2800) to a UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return UUID(b)
}

// Parse parses a standard-format UUID string, such
// as "2800" or "34DA3AD1-7110-41A1-B1EF-4430F509CDE7".
func Parse(s string) (UUID, error) {
	b, err := hex.DecodeString(strings.Replace(s, "-", "", -1))
	if err != nil {
		return nil, err
	}
	if err := lenErr(len(b)); err != nil {
		return nil, err
	}
	return UUID(sliceops.SwapBuf(b)), nil
}

// MustParse is Parse for literals; it panics on error.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func lenErr(n int) error {
	switch n {
	case 2, 16:
		return nil
	}
	return fmt.Errorf("UUIDs must have length 2 or 16, got %d", n)
}

func (u UUID) Len() int { return len(u) }

// Uint16 returns the 16-bit form; ok is false for any other width.
func (u UUID) Uint16() (v uint16, ok bool) {
	if len(u) != 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(u), true
}

func (u UUID) Equal(v UUID) bool {
	return bytes.Equal(u, v)
}

// String returns "2800" for 16-bit UUIDs and the dashed form for 128-bit ones.
func (u UUID) String() string {
	switch len(u) {
	case 2:
		return fmt.Sprintf("%04x", binary.LittleEndian.Uint16(u))
	case 16:
		id, err := uuid.FromBytes(sliceops.SwapBuf(u))
		if err != nil {
			break
		}
		return id.String()
	}
	return hex.EncodeToString(sliceops.SwapBuf(u))
}

// baseUUID is 00000000-0000-1000-8000-00805f9b34fb in wire order, less
// the 32-bit value in its last four bytes.
var baseUUID = []byte{0xfb, 0x34, 0x9b, 0x5f, 0x80, 0x00, 0x00, 0x80, 0x00, 0x10, 0x00, 0x00}

// Short returns the 16-bit value of a UUID, either given in 16 bits or as a
// 128-bit UUID derived from the Bluetooth base UUID.
func (u UUID) Short() (uint16, bool) {
	if v, ok := u.Uint16(); ok {
		return v, true
	}
	if len(u) != 16 || !bytes.Equal(u[:12], baseUUID) {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(u[12:])
	if v > 0xffff {
		return 0, false
	}
	return uint16(v), true
}

// Name returns the assigned name of a 16-bit UUID or of its 128-bit form,
// "Unknown" when it has none and "Vendor specific" for other 128-bit UUIDs.
func (u UUID) Name() string {
	v, ok := u.Short()
	if !ok {
		return "Vendor specific"
	}
	return UUID16Name(v)
}

func UUID16Name(v uint16) string {
	if n, ok := knownUUID[v]; ok {
		return n
	}
	return "Unknown"
}

var knownUUID = map[uint16]string{
	0x1800: "Generic Access Profile",
	0x1801: "Generic Attribute Profile",
	0x180a: "Device Information",
	0x180d: "Heart Rate",
	0x180f: "Battery Service",
	0x1812: "Human Interface Device",
	0x1843: "Audio Input Control",
	0x1844: "Volume Control",
	0x1845: "Volume Offset Control",
	0x1846: "Coordinated Set Identification",
	0x1848: "Media Control",
	0x1849: "Generic Media Control",
	0x184b: "Telephony Bearer",
	0x184c: "Generic Telephony Bearer",
	0x184d: "Microphone Control",
	0x184e: "Audio Stream Control",
	0x184f: "Broadcast Audio Scan",
	0x1850: "Published Audio Capabilities",
	0x1851: "Basic Audio Announcement",
	0x1852: "Broadcast Audio Announcement",

	0x2800: "Primary Service",
	0x2801: "Secondary Service",
	0x2802: "Include",
	0x2803: "Characteristic",

	0x2900: "Characteristic Extended Properties",
	0x2901: "Characteristic User Description",
	0x2902: "Client Characteristic Configuration",
	0x2903: "Server Characteristic Configuration",
	0x2904: "Characteristic Format",
	0x2905: "Characteristic Aggregate Format",
	0x2906: "Valid Range",
	0x2907: "External Report Reference",
	0x2908: "Report Reference",

	0x2a00: "Device Name",
	0x2a01: "Appearance",
	0x2a02: "Peripheral Privacy Flag",
	0x2a03: "Reconnection Address",
	0x2a04: "Peripheral Preferred Connection Parameters",
	0x2a05: "Service Changed",
	0x2a19: "Battery Level",
	0x2a24: "Model Number String",
	0x2a25: "Serial Number String",
	0x2a26: "Firmware Revision String",
	0x2a27: "Hardware Revision String",
	0x2a28: "Software Revision String",
	0x2a29: "Manufacturer Name String",
	0x2a37: "Heart Rate Measurement",
	0x2aa6: "Central Address Resolution",
	0x2b29: "Client Supported Features",
	0x2b2a: "Database Hash",
	0x2b3a: "Server Supported Features",

	0x2b7d: "Volume State",
	0x2b7e: "Volume Control Point",
	0x2b7f: "Volume Flags",
	0x2bc4: "Sink ASE",
	0x2bc5: "Source ASE",
	0x2bc6: "ASE Control Point",
	0x2bc7: "Broadcast Audio Scan Control Point",
	0x2bc8: "Broadcast Receive State",
	0x2bc9: "Sink PAC",
	0x2bca: "Sink Audio Locations",
	0x2bcb: "Source PAC",
	0x2bcc: "Source Audio Locations",
	0x2bcd: "Available Audio Contexts",
	0x2bce: "Supported Audio Contexts",
}
