package att

import (
	"encoding/binary"

	"github.com/rigado/attmon"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
)

func printUUID(p *display.Printer, label string, b []byte) {
	switch len(b) {
	case 2:
		v := binary.LittleEndian.Uint16(b)
		p.Field(label, "%s (0x%4.4x)", attmon.UUID16Name(v), v)
	case 4:
		v := binary.LittleEndian.Uint32(b)
		name := "Unknown"
		if v <= 0xffff {
			name = attmon.UUID16Name(uint16(v))
		}
		p.Field(label, "%s (0x%8.8x)", name, v)
	case 16:
		u := attmon.UUID(b)
		p.Field(label, "%s (%s)", u.Name(), u)
	default:
		p.Dump(b)
	}
}

func printHandleRange(p *display.Printer, label string, b []byte) {
	p.Field(label, "0x%4.4x-0x%4.4x", binary.LittleEndian.Uint16(b), binary.LittleEndian.Uint16(b[2:]))
}

func printAttribute(p *display.Printer, a *attmon.Attribute) {
	p.Field("Handle", "0x%4.4x", a.Handle)
	switch a.Type.Len() {
	case 2, 16:
		printUUID(p, "Type", a.Type)
	}
}

// printHandle prints handle, resolved to its attribute when the database
// picked by rsp knows it.
func (d *Decoder) printHandle(f *frame.Frame, handle uint16, rsp bool, p *display.Printer) {
	a := d.attribute(f, handle, rsp)
	if a == nil {
		p.Field("Handle", "0x%4.4x", handle)
		return
	}
	printAttribute(p, a)
}

func printAttributeInfo(p *display.Printer, typ uint16, b []byte) {
	p.Field("Attribute type", "%s (0x%4.4x)", attmon.UUID16Name(typ), typ)

	np := p.Nested()
	switch typ {
	case 0x2800, 0x2801:
		printUUID(np, "UUID", b)
	case 0x2802:
		if len(b) < 4 {
			np.Hex("Value", b)
			return
		}
		printHandleRange(np, "Handle range", b)
		printUUID(np, "UUID", b[4:])
	case 0x2803:
		if len(b) < 3 {
			np.Hex("Value", b)
			return
		}
		np.Field("Properties", "0x%2.2x", b[0])
		np.Field("Handle", "0x%4.4x", binary.LittleEndian.Uint16(b[1:]))
		printUUID(np, "UUID", b[3:])
	default:
		p.Hex("Value", b)
	}
}

func printDataList(p *display.Printer, label string, length int, b []byte) {
	if length == 0 {
		return
	}
	if length < 2 {
		p.Dump(b)
		return
	}

	printCount(p, label, len(b)/length)
	for len(b) >= length {
		p.Field("Handle", "0x%4.4x", binary.LittleEndian.Uint16(b))
		p.Hex("Value", b[2:length])
		b = b[length:]
	}
	p.Dump(b)
}

func printGroupList(p *display.Printer, label string, length int, b []byte) {
	if length == 0 {
		return
	}
	if length < 4 {
		p.Dump(b)
		return
	}

	printCount(p, label, len(b)/length)
	for len(b) >= length {
		printHandleRange(p, "Handle range", b)
		printUUID(p, "UUID", b[4:length])
		b = b[length:]
	}
	p.Dump(b)
}

func printCount(p *display.Printer, label string, n int) {
	if n == 1 {
		p.Field(label, "1 entry")
		return
	}
	p.Field(label, "%d entries", n)
}
