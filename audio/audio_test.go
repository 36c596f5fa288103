package audio

import (
	"bytes"
	"testing"

	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
)

func run(fn func(*frame.Frame, *display.Printer), b []byte) *display.Recorder {
	r := &display.Recorder{}
	fn(frame.New(0, true, 4, b, len(b)), display.NewPrinter(r))
	return r
}

func expectField(t *testing.T, r *display.Recorder, label, value string) {
	t.Helper()
	for _, e := range r.Kinds(display.KindField) {
		if e.Label == label && e.Value == value {
			return
		}
	}
	t.Fatalf("missing field %q = %q in %+v", label, value, r.Events())
}

func expectFlag(t *testing.T, r *display.Recorder, label string) {
	t.Helper()
	if _, ok := r.Find(display.KindFlag, label); !ok {
		t.Fatalf("missing flag %q in %+v", label, r.Events())
	}
}

func TestControlPointTruncatedEntry(t *testing.T) {
	// Enable, 3 ASEs; the second entry's metadata claims 5 bytes, 2 remain
	b := []byte{0x03, 0x03, 0x01, 0x00, 0x02, 0x05, 0xaa, 0xbb}
	r := run(ControlPoint, b)

	expectField(t, r, "Opcode", "Enable (0x03)")
	expectField(t, r, "Number of ASE(s)", "3")
	expectField(t, r, "ASE ID", "0x01")
	expectField(t, r, "ASE ID", "0x02")

	var entries []string
	for _, e := range r.Kinds(display.KindField) {
		if e.Label == "ASE" {
			entries = append(entries, e.Value)
		}
	}
	if len(entries) != 2 || entries[0] != "#0" || entries[1] != "#1" {
		t.Fatalf("unexpected entries %v", entries)
	}

	if _, ok := r.Find(display.KindError, "Metadata"); !ok {
		t.Fatalf("no truncation marker for entry #1")
	}
	d, ok := r.Find(display.KindHex, "Data")
	if !ok || !bytes.Equal(d.Data, []byte{0xaa, 0xbb}) {
		t.Fatalf("remainder not dumped: %+v", d)
	}
}

func TestControlPointReservedOpcode(t *testing.T) {
	for _, op := range []byte{0x00, 0x09, 0xff} {
		r := run(ControlPoint, []byte{op, 0x01, 0x01})
		e, ok := r.Find(display.KindField, "Opcode")
		if !ok || e.Value != label("", op) {
			t.Fatalf("opcode 0x%02x: got %+v", op, e)
		}
		if _, ok := r.Find(display.KindField, "ASE"); ok {
			t.Fatalf("opcode 0x%02x: entries decoded for reserved opcode", op)
		}
		if d, ok := r.Find(display.KindHex, "Data"); !ok || !bytes.Equal(d.Data, []byte{0x01}) {
			t.Fatalf("opcode 0x%02x: remainder not dumped", op)
		}
	}
}

func TestControlPointQoS(t *testing.T) {
	b := []byte{
		0x02, 0x01, // QoS Configuration, 1 ASE
		0x01, 0x00, 0x00, // ASE, CIG, CIS
		0x10, 0x27, 0x00, // SDU interval 10000
		0x00,       // unframed
		0x02,       // 2M
		0x64, 0x00, // max SDU 100
		0x02,       // RTN
		0x0a, 0x00, // latency 10
		0x40, 0x9c, 0x00, // presentation delay 40000
	}
	r := run(ControlPoint, b)

	expectField(t, r, "SDU Interval", "10000 usec")
	expectField(t, r, "Framing", "Unframed (0x00)")
	expectFlag(t, r, "LE 2M PHY (0x02)")
	expectField(t, r, "Max SDU", "100")
	expectField(t, r, "Presentation Delay", "40000 us")
	if _, ok := r.Find(display.KindHex, "Data"); ok {
		t.Fatalf("fully decoded command left data")
	}
}

func TestControlPointResponse(t *testing.T) {
	b := []byte{0x01, 0x02, 0x01, 0x00, 0x00, 0x02, 0x03, 0x01}
	r := run(ControlPointResponse, b)

	expectField(t, r, "Opcode", "Codec Configuration (0x01)")
	expectField(t, r, "ASE Response Code", "Success (0x00)")
	expectField(t, r, "ASE Response Code", "Invalid ASE ID (0x03)")
	expectField(t, r, "ASE Response Reason", "ASE ID (0x01)")
}

func TestASECodecConfigured(t *testing.T) {
	b := []byte{
		0x01, 0x01, // ASE 1, codec configured
		0x00, 0x02, 0x05, 0x14, 0x00,
		0x40, 0x9c, 0x00, 0x40, 0x9c, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x06, 0x00, 0x00, 0x00, 0x00, // LC3
		0x0a,
		0x02, 0x01, 0x08,
		0x02, 0x02, 0x01,
		0x03, 0x04, 0x78, 0x00,
	}
	r := run(ASE, b)

	expectField(t, r, "ASE ID", "1")
	expectField(t, r, "State", "Codec Configured (0x01)")
	expectField(t, r, "Framing", "Unframed PDUs supported (0x00)")
	expectFlag(t, r, "LE 2M PHY preferred (0x02)")
	expectField(t, r, "Max Transport Latency", "20")
	expectField(t, r, "Codec", "LC3 (0x06)")
	expectField(t, r, "Sampling Frequency", "48 Khz (0x08)")
	expectField(t, r, "Frame Duration", "10 ms (0x01)")
	expectField(t, r, "Frame Length", "120 (0x0078)")
	if _, ok := r.Find(display.KindField, "Codec Company ID"); ok {
		t.Fatalf("company printed for non vendor codec")
	}
	if _, ok := r.Find(display.KindHex, "Data"); ok {
		t.Fatalf("unexpected leftover: %+v", r.Events())
	}
}

func TestASEStreaming(t *testing.T) {
	b := []byte{0x02, 0x04, 0x00, 0x01, 0x04, 0x03, 0x02, 0x04, 0x00}
	r := run(ASE, b)

	expectField(t, r, "State", "Streaming (0x04)")
	expectField(t, r, "CIS ID", "0x01")
	expectField(t, r, "Context", "0x0004")
	expectFlag(t, r, "Media (0x0004)")
}

func TestASEReservedState(t *testing.T) {
	r := run(ASE, []byte{0x01, 0x07, 0xff})
	expectField(t, r, "State", "Reserved (0x07)")
	if d, ok := r.Find(display.KindHex, "Data"); !ok || !bytes.Equal(d.Data, []byte{0xff}) {
		t.Fatalf("payload of reserved state not dumped")
	}
}

func TestASETruncated(t *testing.T) {
	r := run(ASE, []byte{0x01})
	if _, ok := r.Find(display.KindError, "State"); !ok {
		t.Fatalf("missing truncation marker: %+v", r.Events())
	}
}

func TestPAC(t *testing.T) {
	b := []byte{
		0x01,
		0x06, 0x00, 0x00, 0x00, 0x00,
		0x0d,
		0x03, 0x01, 0x80, 0x00,
		0x02, 0x02, 0x02,
		0x05, 0x04, 0x28, 0x00, 0x78, 0x00,
		0x04,
		0x03, 0x02, 0x04, 0x00,
	}
	r := run(PAC, b)

	expectField(t, r, "Number of PAC(s)", "1")
	expectField(t, r, "PAC", "#0")
	expectField(t, r, "Sampling Frequencies", "0x0080")
	expectFlag(t, r, "48 Khz (0x0080)")
	expectFlag(t, r, "10 ms (0x02)")
	expectField(t, r, "Frame Length", "40 (0x0028) - 120 (0x0078)")
	expectField(t, r, "Context", "0x0004")
	expectFlag(t, r, "Media (0x0004)")
}

func TestPACVendorCodec(t *testing.T) {
	b := []byte{0x01, 0xff, 0x4c, 0x00, 0x01, 0x00, 0x00, 0x00}
	r := run(PAC, b)

	expectField(t, r, "Codec", "Vendor specific (0xff)")
	expectField(t, r, "Codec Company ID", "Apple, Inc. (0x004c)")
	expectField(t, r, "Codec Vendor ID", "0x0001")
}

func TestPACTruncatedCodec(t *testing.T) {
	r := run(PAC, []byte{0x02, 0x06, 0x00})
	if _, ok := r.Find(display.KindError, "Codec Company ID"); !ok {
		t.Fatalf("missing truncation marker: %+v", r.Events())
	}
	if d, ok := r.Find(display.KindHex, "Data"); !ok || !bytes.Equal(d.Data, []byte{0x00}) {
		t.Fatalf("remainder not dumped: %+v", r.Events())
	}
}

func TestLocation(t *testing.T) {
	r := run(Location, []byte{0x03, 0x00, 0x00, 0x00})
	expectField(t, r, "Location", "0x00000003")
	expectFlag(t, r, "Front Left (0x00000001)")
	expectFlag(t, r, "Front Right (0x00000002)")
}

func TestContexts(t *testing.T) {
	r := run(Contexts, []byte{0x04, 0x00, 0x06, 0x00})
	expectField(t, r, "Sink Context", "0x0004")
	expectField(t, r, "Source Context", "0x0006")
	expectFlag(t, r, "Conversational (0x0002)")

	r = run(Contexts, []byte{0x04, 0x00, 0x06})
	if _, ok := r.Find(display.KindError, "Source Context"); !ok {
		t.Fatalf("missing truncation marker")
	}
	if d, ok := r.Find(display.KindHex, "Data"); !ok || !bytes.Equal(d.Data, []byte{0x06}) {
		t.Fatalf("remainder not dumped")
	}
}
