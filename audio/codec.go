// Package audio decodes the values of the LE Audio PACS and ASCS
// characteristics.
package audio

import (
	"fmt"

	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
	"github.com/rigado/attmon/ltv"
)

// CodecID is an HCI coding format.
type CodecID uint8

const (
	CodecULaw        CodecID = 0x00
	CodecALaw        CodecID = 0x01
	CodecCVSD        CodecID = 0x02
	CodecTransparent CodecID = 0x03
	CodecLinearPCM   CodecID = 0x04
	CodecMSBC        CodecID = 0x05
	CodecLC3         CodecID = 0x06
	CodecG729A       CodecID = 0x07
	CodecVendor      CodecID = 0xff
)

var codecNames = map[CodecID]string{
	CodecULaw:        "u-law log",
	CodecALaw:        "A-law log",
	CodecCVSD:        "CVSD",
	CodecTransparent: "Transparent",
	CodecLinearPCM:   "Linear PCM",
	CodecMSBC:        "mSBC",
	CodecLC3:         "LC3",
	CodecG729A:       "G.729A",
	CodecVendor:      "Vendor specific",
}

func (c CodecID) String() string {
	if n, ok := codecNames[c]; ok {
		return fmt.Sprintf("%s (0x%2.2x)", n, uint8(c))
	}
	return fmt.Sprintf("Reserved (0x%2.2x)", uint8(c))
}

var companies = map[uint16]string{
	0x0000: "Ericsson Technology Licensing",
	0x0001: "Nokia Mobile Phones",
	0x0002: "Intel Corp.",
	0x0003: "IBM Corp.",
	0x0006: "Microsoft",
	0x000a: "Qualcomm Technologies International, Ltd. (QTIL)",
	0x000d: "Texas Instruments Inc.",
	0x000f: "Broadcom Corporation",
	0x001d: "Qualcomm",
	0x004c: "Apple, Inc.",
	0x0059: "Nordic Semiconductor ASA",
	0x0075: "Samsung Electronics Co. Ltd.",
	0x00e0: "Google",
}

func companyName(id uint16) string {
	if n, ok := companies[id]; ok {
		return n
	}
	return "Unknown"
}

// readU8 reads one byte, reporting a truncation under label.
func readU8(f *frame.Frame, p *display.Printer, label string) (uint8, error) {
	v, err := f.U8()
	if err != nil {
		p.Error(label, err)
	}
	return v, err
}

func readLE16(f *frame.Frame, p *display.Printer, label string) (uint16, error) {
	v, err := f.LE16()
	if err != nil {
		p.Error(label, err)
	}
	return v, err
}

func readLE24(f *frame.Frame, p *display.Printer, label string) (uint32, error) {
	v, err := f.LE24()
	if err != nil {
		p.Error(label, err)
	}
	return v, err
}

func printU8(f *frame.Frame, p *display.Printer, label string) error {
	v, err := readU8(f, p, label)
	if err == nil {
		p.Field(label, "0x%2.2x", v)
	}
	return err
}

func printCodec(f *frame.Frame, p *display.Printer) error {
	id, err := readU8(f, p, "Codec")
	if err != nil {
		return err
	}
	p.Field("Codec", "%s", CodecID(id))

	cid, err := readLE16(f, p, "Codec Company ID")
	if err != nil {
		return err
	}
	vid, err := readLE16(f, p, "Codec Vendor ID")
	if err != nil {
		return err
	}

	if CodecID(id) == CodecVendor {
		p.Field("Codec Company ID", "%s (0x%04x)", companyName(cid), cid)
		p.Field("Codec Vendor ID", "0x%04x", vid)
	}
	return nil
}

// printLV decodes a length-prefixed block of LTV records.
func printLV(f *frame.Frame, p *display.Printer, label string, t ltv.Table) error {
	l, err := readU8(f, p, label)
	if err != nil {
		return err
	}

	sub, err := f.Sub(int(l))
	if err != nil {
		p.Error(label, err)
		return err
	}

	p.Field(label, "len 0x%02x", l)
	if sub.Len() == 0 {
		return nil
	}
	if t == nil {
		p.Nested().Hex("Data", sub.Bytes())
		return nil
	}
	ltv.Decode(label, sub, t, p.Nested())
	return nil
}

// dumpRest emits whatever value bytes a decoder did not consume.
func dumpRest(f *frame.Frame, p *display.Printer) {
	if f.Len() > 0 {
		p.Hex("Data", f.Bytes())
		f.Pull(f.Len())
	}
}
