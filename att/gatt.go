package att

import (
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/audio"
	"github.com/rigado/attmon/bitfield"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
)

// ValueFunc decodes an attribute value. It reports problems as events and
// dumps whatever it could not decode.
type ValueFunc func(f *frame.Frame, p *display.Printer)

// TypeHandler holds the value decoders of one attribute type. Any of them
// may be nil.
type TypeHandler struct {
	Read   ValueFunc
	Write  ValueFunc
	Notify ValueFunc
}

var typeHandlers = map[uint16]TypeHandler{
	0x2902: {Read: ccc, Write: ccc},
	0x2bc4: {Read: audio.ASE, Notify: audio.ASE},
	0x2bc5: {Read: audio.ASE, Notify: audio.ASE},
	0x2bc6: {Write: audio.ControlPoint, Notify: audio.ControlPointResponse},
	0x2bc9: {Read: audio.PAC, Notify: audio.PAC},
	0x2bca: {Read: audio.Location, Notify: audio.Location},
	0x2bcb: {Read: audio.PAC, Notify: audio.PAC},
	0x2bcc: {Read: audio.Location, Notify: audio.Location},
	0x2bcd: {Read: audio.Contexts, Notify: audio.Contexts},
	0x2bce: {Read: audio.Contexts, Notify: audio.Contexts},
}

// Resolve returns the decoders for an attribute type. Only 16-bit UUIDs
// are ever resolved.
func Resolve(u attmon.UUID) (TypeHandler, bool) {
	v, ok := u.Uint16()
	if !ok {
		return TypeHandler{}, false
	}
	h, ok := typeHandlers[v]
	return h, ok
}

func resolveAttr(a *attmon.Attribute) (TypeHandler, bool) {
	if a == nil {
		return TypeHandler{}, false
	}
	return Resolve(a.Type)
}

var cccTable = bitfield.Table{
	{Index: 0, Label: "Notification (0x01)"},
	{Index: 1, Label: "Indication (0x02)"},
}

// ccc decodes a Client Characteristic Configuration value.
func ccc(f *frame.Frame, p *display.Printer) {
	v, err := f.U8()
	if err != nil {
		p.Error("", ErrInvalidSize)
		return
	}
	p.Bits(8, uint64(v), cccTable)
	if f.Len() > 0 {
		p.Hex("Data", f.Bytes())
		f.Pull(f.Len())
	}
}
