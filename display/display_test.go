package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/rigado/attmon/bitfield"
)

func TestPrinterDepth(t *testing.T) {
	r := &Recorder{}
	p := NewPrinter(r)

	p.Opcode("Exchange MTU Request", 0x02, 2, 64, true, 4)
	p.Nested().Field("Client RX MTU", "%d", 160)

	ev := r.Events()
	if len(ev) != 2 {
		t.Fatalf("expected 2 events, got %d", len(ev))
	}
	if ev[0].Kind != KindOpcode || ev[0].Value != "0x02" || ev[0].Conn != 64 || ev[0].Size != 2 {
		t.Fatalf("unexpected opcode event %+v", ev[0])
	}
	if ev[1].Depth != 1 || ev[1].Value != "160" {
		t.Fatalf("unexpected field event %+v", ev[1])
	}
}

func TestPrinterBits(t *testing.T) {
	r := &Recorder{}
	res := NewPrinter(r).Bits(8, 0x05, bitfield.Table{{Index: 0, Label: "A"}, {Index: 1, Label: "B"}})
	if res != 0x04 {
		t.Fatalf("residual 0x%x", res)
	}

	flags := r.Kinds(KindFlag)
	if len(flags) != 1 || flags[0].Label != "A" {
		t.Fatalf("unexpected flags %+v", flags)
	}
	u, ok := r.Find(KindUnknownBits, "Unknown fields")
	if !ok || u.Value != "0x4" {
		t.Fatalf("unexpected residual event %+v", u)
	}
}

func TestPrinterDumpEmpty(t *testing.T) {
	r := &Recorder{}
	NewPrinter(r).Dump(nil)
	if len(r.Events()) != 0 {
		t.Fatalf("empty dump emitted an event")
	}
}

func TestPrinterCopiesData(t *testing.T) {
	r := &Recorder{}
	b := []byte{1, 2}
	NewPrinter(r).Hex("Value", b)
	b[0] = 9
	if r.Events()[0].Data[0] != 1 {
		t.Fatalf("event aliases caller buffer")
	}
}

func TestTextSink(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(NewTextSink(&buf))

	p.Opcode("Read Request", 0x0a, 2, 1, false, 4)
	p.Nested().Field("Handle", "0x%4.4x", 3)
	p.Nested().Hex("Value", []byte{0xde, 0xad})
	p.Nested().Error("Codec", errString("truncated"))
	p.Nested().Dump([]byte("AB\x00"))

	want := []string{
		"< ATT: Read Request (0x0a) len 2",
		"  Handle: 0x0003",
		"  Value: dead",
		"  Codec: truncated",
		"  41 42 00",
	}
	out := buf.String()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q:\n%s", w, out)
		}
	}
	if !strings.Contains(out, "AB.") {
		t.Fatalf("hexdump missing ascii column:\n%s", out)
	}
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONSink(&buf)
	s.Emit(Event{Kind: KindField, Label: "Client RX MTU", Value: "160"})
	if s.Err() != nil {
		t.Fatal(s.Err())
	}

	out := buf.String()
	if !strings.Contains(out, `"kind":"field"`) || !strings.Contains(out, `"label":"Client RX MTU"`) {
		t.Fatalf("unexpected json %s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("records must be newline terminated")
	}
}

func TestCBORSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewCBORSink(&buf)
	s.Emit(Event{Kind: KindHex, Label: "Value", Data: []byte{1, 2, 3}})
	if s.Err() != nil {
		t.Fatal(s.Err())
	}

	var got Event
	if err := cbor.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindHex || got.Label != "Value" || !bytes.Equal(got.Data, []byte{1, 2, 3}) {
		t.Fatalf("unexpected decoded event %+v", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
