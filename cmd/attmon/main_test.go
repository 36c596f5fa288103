package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcapgo"

	"github.com/rigado/attmon"
	"github.com/rigado/attmon/att"
	"github.com/rigado/attmon/cache"
	"github.com/rigado/attmon/capture"
	"github.com/rigado/attmon/config"
	"github.com/rigado/attmon/hci"
)

func TestParseHex(t *testing.T) {
	for _, s := range []string{"02a000", "02 a0 00", "02:A0:00", "0x02 0xa0 0x00"} {
		b, err := parseHex(s)
		if err != nil || !bytes.Equal(b, []byte{0x02, 0xa0, 0x00}) {
			t.Fatalf("%q: got %x, %v", s, b, err)
		}
	}
	if _, err := parseHex("02a"); err == nil {
		t.Fatalf("expected error for odd length")
	}
}

func TestSessionDecodesPDU(t *testing.T) {
	c := config.Default()
	c.StorageDir = ""
	out := &bytes.Buffer{}

	s, err := newSession(c, out)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	s.dec.Decode(att.Packet{Conn: 0x40, In: true, CID: att.CIDAttribute, Data: []byte{0x02, 0xa0, 0x00}})

	want := "> ATT: Exchange MTU Request (0x02) len 2\n  Client RX MTU: 160\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestSessionFeedsCapture(t *testing.T) {
	dir := t.TempDir()
	local := attmon.NewAddr("00:11:22:33:44:55")
	peer := attmon.NewAddr("66:77:88:99:AA:BB")
	if err := cache.New(dir).Store(attmon.PeerCachePath(local, peer), []attmon.Attribute{
		{Handle: 0x0003, Type: attmon.UUID16(0x2bc4)},
	}, true); err != nil {
		t.Fatalf("Store: %v", err)
	}

	pkts := [][]byte{
		// Read BD_ADDR complete
		{0x00, 0x00, 0x00, 0x01, hci.PktTypeEvent, 0x0e, 0x0a, 0x01, 0x09, 0x10, 0x00, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00},
		// LE Connection Complete, handle 0x0040
		{0x00, 0x00, 0x00, 0x01, hci.PktTypeEvent, 0x3e, 0x13, 0x01, 0x00, 0x40, 0x00, 0x00, 0x00,
			0xbb, 0xaa, 0x99, 0x88, 0x77, 0x66, 0x18, 0x00, 0x00, 0x00, 0x48, 0x00, 0x00},
		// truncated pseudo header and an empty packet, both skipped
		{0x00, 0x00},
		{0x00, 0x00, 0x00, 0x01},
		// notification of handle 3: ASE 1 idle
		{0x00, 0x00, 0x00, 0x01, hci.PktTypeACLData, 0x40, 0x20, 0x09, 0x00, 0x05, 0x00, 0x04, 0x00, 0x1b, 0x03, 0x00, 0x01, 0x00},
	}

	buf := &bytes.Buffer{}
	w := pcapgo.NewWriter(buf)
	if err := w.WriteFileHeader(65536, capture.LinkTypeH4WithPhdr); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	for _, p := range pkts {
		if err := w.WritePacket(gopacket.CaptureInfo{CaptureLength: len(p), Length: len(p)}, p); err != nil {
			t.Fatalf("WritePacket: %v", err)
		}
	}
	path := filepath.Join(dir, "trace.pcap")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	r, err := capture.Open(f)
	if err != nil {
		t.Fatalf("capture.Open: %v", err)
	}

	c := config.Default()
	c.StorageDir = dir
	out := &bytes.Buffer{}
	s, err := newSession(c, out)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	if err := s.feed(r); err != nil {
		t.Fatalf("feed: %v", err)
	}

	for _, want := range []string{
		"> ATT: Handle Value Notification (0x1b) len 4",
		"Type: Sink ASE (0x2bc4)",
		"State: Idle (0x00)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in\n%s", want, out.String())
		}
	}
}
