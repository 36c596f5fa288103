// Package ltv walks sequences of length-type-value records. Each record is
// a length byte followed by that many bytes, the first of which is the type.
package ltv

import (
	"errors"
	"fmt"

	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
)

var ErrEmptyRecord = errors.New("empty record")

// Func decodes one record value. f covers exactly the value bytes; whatever
// is left unread afterwards is dumped by the caller.
type Func func(f *frame.Frame, p *display.Printer) error

// Entry describes one record type. A nil Decode prints the value as hex
// under Name.
type Entry struct {
	Name   string
	Decode Func
}

type Table map[uint8]Entry

// Decode prints every record in f. It stops early, dumping what is left of
// f, only when a record claims more bytes than remain; in that case it
// returns frame.ErrTruncated. A record whose value fails to decode is
// reported and dumped, and its siblings are still decoded.
func Decode(label string, f *frame.Frame, t Table, p *display.Printer) error {
	for i := 0; f.Len() > 0; i++ {
		name := fmt.Sprintf("%s #%d", label, i)

		l, err := f.U8()
		if err != nil {
			return err
		}

		rec, err := f.Sub(int(l))
		if err != nil {
			p.Error(name, err)
			p.Dump(f.Bytes())
			f.Pull(f.Len())
			return err
		}

		typ, err := rec.U8()
		if err != nil {
			p.Error(name, ErrEmptyRecord)
			continue
		}

		p.Field(name, "len 0x%02x type 0x%02x", l, typ)
		np := p.Nested()

		e, ok := t[typ]
		if !ok || e.Decode == nil {
			hexLabel := "Data"
			if ok {
				hexLabel = e.Name
			}
			np.Hex(hexLabel, rec.Bytes())
			continue
		}

		if err := e.Decode(rec, np); err != nil {
			np.Error(e.Name, err)
		}
		if rec.Len() > 0 {
			np.Hex("Data", rec.Bytes())
		}
	}
	return nil
}
