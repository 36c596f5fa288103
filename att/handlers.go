package att

import (
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
)

// The dispatcher checks the fixed part of each PDU before calling a
// handler, so the leading reads below cannot fail.

func (d *Decoder) errorResponse(f *frame.Frame, p *display.Printer) {
	req, _ := f.U8()
	handle, _ := f.LE16()
	code, _ := f.U8()

	p.Field("Request", "%s (0x%2.2x)", OpcodeName(req), req)
	p.Field("Handle", "0x%4.4x", handle)
	p.Field("Error", "%s", ErrorCode(code))
}

func (d *Decoder) exchangeMTURequest(f *frame.Frame, p *display.Printer) {
	mtu, _ := f.LE16()
	p.Field("Client RX MTU", "%d", mtu)
}

func (d *Decoder) exchangeMTUResponse(f *frame.Frame, p *display.Printer) {
	mtu, _ := f.LE16()
	p.Field("Server RX MTU", "%d", mtu)
}

func (d *Decoder) handleRange(f *frame.Frame, p *display.Printer) {
	printHandleRange(p, "Handle range", f.Bytes())
}

func (d *Decoder) findInfoResponse(f *frame.Frame, p *display.Printer) {
	format, _ := f.U8()

	var size int
	switch format {
	case 0x01:
		p.Field("Format", "UUID-16 (0x%2.2x)", format)
		size = 2
	case 0x02:
		p.Field("Format", "UUID-128 (0x%2.2x)", format)
		size = 16
	default:
		p.Field("Format", "unknown (0x%2.2x)", format)
		p.Dump(f.Bytes())
		return
	}

	for f.Len() >= 2+size {
		handle, _ := f.LE16()
		u, _ := f.Pull(size)
		p.Field("Handle", "0x%4.4x", handle)
		printUUID(p, "UUID", u)
	}
	p.Dump(f.Bytes())
}

func (d *Decoder) findByTypeValueRequest(f *frame.Frame, p *display.Printer) {
	b, _ := f.Pull(4)
	printHandleRange(p, "Handle range", b)
	typ, _ := f.LE16()
	printAttributeInfo(p, typ, f.Bytes())
}

func (d *Decoder) findByTypeValueResponse(f *frame.Frame, p *display.Printer) {
	for f.Len() >= 4 {
		b, _ := f.Pull(4)
		printHandleRange(p, "Handle range", b)
	}
	p.Dump(f.Bytes())
}

func (d *Decoder) readByTypeRequest(f *frame.Frame, p *display.Printer) {
	b, _ := f.Pull(4)
	printHandleRange(p, "Handle range", b)
	printUUID(p, "Attribute type", f.Bytes())
}

func (d *Decoder) readByTypeResponse(f *frame.Frame, p *display.Printer) {
	length, _ := f.U8()
	p.Field("Attribute data length", "%d", length)
	printDataList(p, "Attribute data list", int(length), f.Bytes())
}

func (d *Decoder) readRequest(f *frame.Frame, p *display.Printer) {
	handle, _ := f.LE16()
	d.printHandle(f, handle, false, p)

	a := d.attribute(f, handle, false)
	th, ok := resolveAttr(a)
	if !ok || th.Read == nil {
		return
	}

	c := d.conn(f.Conn)
	dropped := c.reads.push(pendingRead{attr: a, in: f.In, cid: f.CID, decode: th.Read}, d.maxPending)
	if dropped > 0 {
		d.logger.Warnf("connection 0x%04x: dropped %d unanswered reads", f.Conn, dropped)
	}
	if d.metrics != nil {
		d.metrics.PendingReads.Add(float64(1 - dropped))
		d.metrics.EvictedReads.Add(float64(dropped))
	}
}

func (d *Decoder) readResponse(f *frame.Frame, p *display.Printer) {
	p.Hex("Value", f.Bytes())

	c, ok := d.conns[f.Conn]
	if !ok {
		return
	}
	pr, ok := c.reads.take(f.In, f.CID)
	if !ok {
		return
	}
	if d.metrics != nil {
		d.metrics.PendingReads.Dec()
		d.metrics.MatchedReads.Inc()
	}

	printAttribute(p, pr.attr)
	pr.decode(f.Clone(), p)
}

func (d *Decoder) readBlobRequest(f *frame.Frame, p *display.Printer) {
	handle, _ := f.LE16()
	offset, _ := f.LE16()
	d.printHandle(f, handle, false, p)
	p.Field("Offset", "0x%4.4x", offset)
}

func (d *Decoder) dump(f *frame.Frame, p *display.Printer) {
	p.Dump(f.Bytes())
}

func (d *Decoder) readMultipleRequest(f *frame.Frame, p *display.Printer) {
	for f.Len() >= 2 {
		handle, _ := f.LE16()
		d.printHandle(f, handle, false, p)
	}
	p.Dump(f.Bytes())
}

func (d *Decoder) readByGroupTypeRequest(f *frame.Frame, p *display.Printer) {
	b, _ := f.Pull(4)
	printHandleRange(p, "Handle range", b)
	printUUID(p, "Attribute group type", f.Bytes())
}

func (d *Decoder) readByGroupTypeResponse(f *frame.Frame, p *display.Printer) {
	length, _ := f.U8()
	p.Field("Attribute data length", "%d", length)
	printGroupList(p, "Attribute group list", int(length), f.Bytes())
}

func (d *Decoder) write(f *frame.Frame, p *display.Printer) {
	handle, _ := f.LE16()
	d.printWrite(f, handle, f.Len(), p)
}

// printWrite prints a written value of n bytes and hands it to the write
// decoder of the target attribute.
func (d *Decoder) printWrite(f *frame.Frame, handle uint16, n int, p *display.Printer) {
	d.printHandle(f, handle, false, p)
	p.Hex("Data", f.Bytes()[:n])

	th, ok := resolveAttr(d.attribute(f, handle, false))
	if !ok || th.Write == nil {
		return
	}
	th.Write(f.Truncate(n), p)
}

func (d *Decoder) empty(f *frame.Frame, p *display.Printer) {}

func (d *Decoder) prepareWriteRequest(f *frame.Frame, p *display.Printer) {
	d.prepareWrite(f, false, p)
}

func (d *Decoder) prepareWriteResponse(f *frame.Frame, p *display.Printer) {
	d.prepareWrite(f, true, p)
}

func (d *Decoder) prepareWrite(f *frame.Frame, rsp bool, p *display.Printer) {
	handle, _ := f.LE16()
	offset, _ := f.LE16()
	d.printHandle(f, handle, rsp, p)
	p.Field("Offset", "0x%4.4x", offset)
	p.Hex("Data", f.Bytes())
}

var executeFlags = map[uint8]string{
	0x00: "Cancel all prepared writes",
	0x01: "Immediately write all pending values",
}

func (d *Decoder) executeWriteRequest(f *frame.Frame, p *display.Printer) {
	flags, _ := f.U8()
	desc, ok := executeFlags[flags]
	if !ok {
		desc = "Unknown"
	}
	p.Field("Flags", "%s (0x%02x)", desc, flags)
}

func (d *Decoder) notify(f *frame.Frame, p *display.Printer) {
	handle, _ := f.LE16()
	d.printNotify(f, handle, f.Len(), p)
}

// printNotify prints a notified value of n bytes and hands it to the
// notify decoder of its attribute. Notifications come from the server,
// so the handle is looked up the way a response's is.
func (d *Decoder) printNotify(f *frame.Frame, handle uint16, n int, p *display.Printer) {
	d.printHandle(f, handle, true, p)
	if n > f.Len() {
		p.Hex("Data", f.Bytes())
		p.Error("", ErrInvalidSize)
		return
	}
	p.Hex("Data", f.Bytes()[:n])

	th, ok := resolveAttr(d.attribute(f, handle, true))
	if !ok || th.Notify == nil {
		return
	}
	th.Notify(f.Truncate(n), p)
}

func (d *Decoder) multipleValues(f *frame.Frame, p *display.Printer) {
	for f.Len() > 0 {
		handle, err := f.LE16()
		if err != nil {
			break
		}
		n, err := f.LE16()
		if err != nil {
			break
		}
		p.Field("Length", "0x%4.4x", n)

		d.printNotify(f, handle, int(n), p)
		if _, err := f.Pull(int(n)); err != nil {
			return
		}
	}
	p.Dump(f.Bytes())
}

func (d *Decoder) signedWrite(f *frame.Frame, p *display.Printer) {
	pdu := f.Bytes()
	handle, _ := f.LE16()

	n := f.Len() - signatureLen
	d.printWrite(f, handle, n, p)

	sig := f.Bytes()[n:]
	p.Hex("Signature", sig)
	d.verify(f, pdu, p)
}
