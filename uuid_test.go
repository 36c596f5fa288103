package attmon

import (
	"bytes"
	"testing"
)

func TestUUIDForms(t *testing.T) {
	u := UUID16(0x2bc4)
	if !bytes.Equal(u, []byte{0xc4, 0x2b}) {
		t.Fatalf("not little-endian: %x", []byte(u))
	}
	if u.String() != "2bc4" || u.Name() != "Sink ASE" {
		t.Fatalf("unexpected rendering %s %s", u, u.Name())
	}
	if v, ok := u.Uint16(); !ok || v != 0x2bc4 {
		t.Fatalf("Uint16: %x %v", v, ok)
	}

	long := MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7")
	if long.Len() != 16 || long[0] != 0xe7 {
		t.Fatalf("unexpected bytes %x", []byte(long))
	}
	if long.String() != "34da3ad1-7110-41a1-b1ef-4430f509cde7" {
		t.Fatalf("unexpected string %s", long)
	}
	if long.Name() != "Vendor specific" {
		t.Fatalf("unexpected name %s", long.Name())
	}
	if _, ok := long.Uint16(); ok {
		t.Fatalf("128-bit uuid converted to 16 bits")
	}

	based := MustParse("00002800-0000-1000-8000-00805F9B34FB")
	if based.Name() != "Primary Service" {
		t.Fatalf("unexpected name %s", based.Name())
	}
	if v, ok := based.Short(); !ok || v != 0x2800 {
		t.Fatalf("Short: %x %v", v, ok)
	}
	if _, ok := based.Uint16(); ok {
		t.Fatalf("128-bit uuid converted to 16 bits")
	}
	if MustParse("00012800-0000-1000-8000-00805F9B34FB").Name() != "Vendor specific" {
		t.Fatalf("32-bit base uuid resolved as 16-bit")
	}

	if _, err := Parse("123456"); err == nil {
		t.Fatalf("expected length error")
	}
	if UUID16Name(0xfff0) != "Unknown" {
		t.Fatalf("unexpected name %s", UUID16Name(0xfff0))
	}
}

func TestAddr(t *testing.T) {
	a := AddrFromWire([]byte{0x55, 0x44, 0x33, 0x22, 0x11, 0x00})
	if a.String() != "00:11:22:33:44:55" {
		t.Fatalf("unexpected address %s", a)
	}
	if !bytes.Equal(a.Bytes(), []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}) {
		t.Fatalf("unexpected bytes %x", a.Bytes())
	}
	if AddrFromWire([]byte{0x01}) != nil {
		t.Fatalf("short address accepted")
	}
	if NewAddr("aa:bb:cc:dd:ee:ff").String() != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("address not normalized")
	}
	if PeerCachePath(a, NewAddr("aa:bb:cc:dd:ee:ff")) != "00:11:22:33:44:55/cache/AA:BB:CC:DD:EE:FF" {
		t.Fatalf("unexpected cache path %s", PeerCachePath(a, NewAddr("aa:bb:cc:dd:ee:ff")))
	}
}

func TestSetLogLevel(t *testing.T) {
	if err := SetLogLevel("debug"); err != nil {
		t.Fatalf("SetLogLevel: %v", err)
	}
	if err := SetLogLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
	SetLogLevel("info")
}
