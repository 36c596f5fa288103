package hci

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/att"
	"github.com/rigado/attmon/metrics"
)

type opened struct {
	handle      uint16
	local, peer string
}

type fakeHandler struct {
	pkts   []att.Packet
	opened []opened
	closed []uint16
}

func (f *fakeHandler) Decode(p att.Packet) { f.pkts = append(f.pkts, p) }

func (f *fakeHandler) OpenConn(h uint16, local, peer attmon.Addr) {
	o := opened{handle: h, peer: peer.String()}
	if local != nil {
		o.local = local.String()
	}
	f.opened = append(f.opened, o)
}

func (f *fakeHandler) CloseConn(h uint16) { f.closed = append(f.closed, h) }

func TestCompleteACL(t *testing.T) {
	h := &fakeHandler{}
	d := NewDemux(h, nil)

	// handle 0x0040, start, l2cap len 3 on cid 4: exchange mtu request
	pkt := []byte{0x40, 0x20, 0x07, 0x00, 0x03, 0x00, 0x04, 0x00, 0x02, 0xa0, 0x00}
	if err := d.Handle(PktTypeACLData, true, pkt); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(h.pkts) != 1 {
		t.Fatalf("expected 1 pdu, got %d", len(h.pkts))
	}
	p := h.pkts[0]
	if p.Conn != 0x0040 || !p.In || p.CID != att.CIDAttribute || !bytes.Equal(p.Data, []byte{0x02, 0xa0, 0x00}) {
		t.Fatalf("unexpected pdu %+v", p)
	}
}

func TestFragmentedACL(t *testing.T) {
	h := &fakeHandler{}
	d := NewDemux(h, nil)

	first := []byte{0x41, 0x00, 0x06, 0x00, 0x05, 0x00, 0x04, 0x00, 0x1b, 0x03}
	second := []byte{0x41, 0x10, 0x03, 0x00, 0x00, 0x01, 0x00}
	if err := d.Handle(PktTypeACLData, false, first); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(h.pkts) != 0 {
		t.Fatalf("delivered a partial pdu")
	}
	if err := d.Handle(PktTypeACLData, false, second); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(h.pkts) != 1 || !bytes.Equal(h.pkts[0].Data, []byte{0x1b, 0x03, 0x00, 0x01, 0x00}) || h.pkts[0].In {
		t.Fatalf("unexpected pdus %+v", h.pkts)
	}
}

func TestOrphanContinuation(t *testing.T) {
	h := &fakeHandler{}
	d := NewDemux(h, nil)
	if err := d.Handle(PktTypeACLData, true, []byte{0x40, 0x10, 0x01, 0x00, 0xaa}); err == nil {
		t.Fatalf("expected error")
	}
	if err := d.Handle(PktTypeACLData, true, []byte{0x40, 0x20, 0x05, 0x00}); err == nil {
		t.Fatalf("expected error for short packet")
	}
}

func TestOtherChannelsIgnored(t *testing.T) {
	h := &fakeHandler{}
	d := NewDemux(h, nil)

	// smp pairing request on cid 6
	pkt := []byte{0x40, 0x20, 0x05, 0x00, 0x01, 0x00, 0x06, 0x00, 0x01}
	if err := d.Handle(PktTypeACLData, true, pkt); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(h.pkts) != 0 {
		t.Fatalf("unexpected pdus %+v", h.pkts)
	}
}

func TestConnectionEvents(t *testing.T) {
	h := &fakeHandler{}
	m := metrics.New()
	d := NewDemux(h, m)

	readAddr := []byte{0x0e, 0x0a, 0x01, 0x09, 0x10, 0x00, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00}
	if err := d.Handle(PktTypeEvent, true, readAddr); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if d.Local() == nil || d.Local().String() != "00:11:22:33:44:55" {
		t.Fatalf("unexpected local address %v", d.Local())
	}

	connComplete := []byte{0x3e, 0x13, 0x01, 0x00, 0x40, 0x00, 0x00, 0x00,
		0xbb, 0xaa, 0x99, 0x88, 0x77, 0x66, 0x18, 0x00, 0x00, 0x00, 0x48, 0x00, 0x00}
	if err := d.Handle(PktTypeEvent, true, connComplete); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := opened{0x0040, "00:11:22:33:44:55", "66:77:88:99:AA:BB"}
	if len(h.opened) != 1 || h.opened[0] != want {
		t.Fatalf("unexpected connections %+v", h.opened)
	}

	failed := []byte{0x3e, 0x13, 0x01, 0x3e, 0x41, 0x00, 0x00, 0x00,
		0xbb, 0xaa, 0x99, 0x88, 0x77, 0x66, 0x18, 0x00, 0x00, 0x00, 0x48, 0x00, 0x00}
	if err := d.Handle(PktTypeEvent, true, failed); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(h.opened) != 1 {
		t.Fatalf("failed connection opened")
	}

	disconn := []byte{0x05, 0x04, 0x00, 0x40, 0x00, 0x13}
	if err := d.Handle(PktTypeEvent, true, disconn); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(h.closed) != 1 || h.closed[0] != 0x0040 {
		t.Fatalf("unexpected disconnections %v", h.closed)
	}

	if v := testutil.ToFloat64(m.CaptureFrames.WithLabelValues("event")); v != 4 {
		t.Fatalf("expected 4 events counted, got %v", v)
	}
}

func TestEventsFromHostIgnored(t *testing.T) {
	h := &fakeHandler{}
	d := NewDemux(h, nil)
	if err := d.Handle(PktTypeEvent, false, []byte{0x05, 0x04, 0x00, 0x40, 0x00, 0x13}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(h.closed) != 0 {
		t.Fatalf("unexpected disconnections %v", h.closed)
	}
}

func TestTruncatedEvent(t *testing.T) {
	d := NewDemux(&fakeHandler{}, nil)
	if err := d.Handle(PktTypeEvent, true, []byte{0x05, 0x04, 0x00}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDisconnectionWithoutReason(t *testing.T) {
	h := &fakeHandler{}
	d := NewDemux(h, nil)
	if err := d.Handle(PktTypeEvent, true, []byte{0x05, 0x03, 0x00, 0x40, 0x00}); err == nil {
		t.Fatalf("expected error")
	}
	if len(h.closed) != 0 {
		t.Fatalf("unexpected disconnections %v", h.closed)
	}
}

func TestRoleName(t *testing.T) {
	for r, want := range map[uint8]string{
		0x00: "central",
		0x01: "peripheral",
		0x02: "role 0x02",
	} {
		if got := roleName(r); got != want {
			t.Fatalf("role 0x%02x: got %q, want %q", r, got, want)
		}
	}
}

func TestDecoderAsHandler(t *testing.T) {
	dec, err := att.NewDecoder()
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	var _ Handler = dec
}
