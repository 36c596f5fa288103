package display

import (
	"fmt"

	"github.com/rigado/attmon/bitfield"
)

// Printer emits events at a fixed nesting depth.
type Printer struct {
	sink  Sink
	depth int
}

func NewPrinter(s Sink) *Printer {
	if s == nil {
		s = Discard
	}
	return &Printer{sink: s}
}

// Nested returns a printer one level deeper.
func (p *Printer) Nested() *Printer {
	return &Printer{sink: p.sink, depth: p.depth + 1}
}

// Opcode starts a PDU.
func (p *Printer) Opcode(name string, opcode uint8, size int, conn uint16, in bool, cid uint16) {
	p.sink.Emit(Event{
		Kind:  KindOpcode,
		Depth: p.depth,
		Label: name,
		Value: fmt.Sprintf("0x%2.2x", opcode),
		Conn:  conn,
		In:    in,
		CID:   cid,
		Size:  size,
	})
}

func (p *Printer) Field(label, format string, args ...interface{}) {
	p.sink.Emit(Event{Kind: KindField, Depth: p.depth, Label: label, Value: fmt.Sprintf(format, args...)})
}

// Hex emits a labelled byte string.
func (p *Printer) Hex(label string, b []byte) {
	p.sink.Emit(Event{Kind: KindHex, Depth: p.depth, Label: label, Data: copyBytes(b)})
}

// Dump emits unlabelled bytes. Nothing is emitted for an empty slice.
func (p *Printer) Dump(b []byte) {
	if len(b) == 0 {
		return
	}
	p.sink.Emit(Event{Kind: KindDump, Depth: p.depth, Data: copyBytes(b)})
}

func (p *Printer) Error(label string, err error) {
	p.sink.Emit(Event{Kind: KindError, Depth: p.depth, Label: label, Err: err.Error()})
}

// Bits emits one flag per labelled bit set in v followed by the unlabelled
// remainder, if any. It returns that remainder.
func (p *Printer) Bits(width uint, v uint64, t bitfield.Table) uint64 {
	labels, residual := bitfield.Decode(width, v, t)
	for _, l := range labels {
		p.sink.Emit(Event{Kind: KindFlag, Depth: p.depth, Label: l})
	}
	if residual != 0 {
		p.sink.Emit(Event{
			Kind:  KindUnknownBits,
			Depth: p.depth,
			Label: "Unknown fields",
			Value: fmt.Sprintf("0x%x", residual),
		})
	}
	return residual
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
