package audio

import (
	"github.com/rigado/attmon/bitfield"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
	"github.com/rigado/attmon/ltv"
)

var contextTable = bitfield.Table{
	{Index: 0, Label: "Unspecified (0x0001)"},
	{Index: 1, Label: "Conversational (0x0002)"},
	{Index: 2, Label: "Media (0x0004)"},
	{Index: 3, Label: "Game (0x0008)"},
	{Index: 4, Label: "Instructional (0x0010)"},
	{Index: 5, Label: "Voice Assistants (0x0020)"},
	{Index: 6, Label: "Live (0x0040)"},
	{Index: 7, Label: "Sound Effects (0x0080)"},
	{Index: 8, Label: "Notifications (0x0100)"},
	{Index: 9, Label: "Ringtone (0x0200)"},
	{Index: 10, Label: "Alerts (0x0400)"},
	{Index: 11, Label: "Emergency alarm (0x0800)"},
	{Index: 12, Label: "RFU (0x1000)"},
	{Index: 13, Label: "RFU (0x2000)"},
	{Index: 14, Label: "RFU (0x4000)"},
	{Index: 15, Label: "RFU (0x8000)"},
}

var frequencyTable = bitfield.Table{
	{Index: 0, Label: "8 Khz (0x0001)"},
	{Index: 1, Label: "11.25 Khz (0x0002)"},
	{Index: 2, Label: "16 Khz (0x0004)"},
	{Index: 3, Label: "22.05 Khz (0x0008)"},
	{Index: 4, Label: "24 Khz (0x0010)"},
	{Index: 5, Label: "32 Khz (0x0020)"},
	{Index: 6, Label: "44.1 Khz (0x0040)"},
	{Index: 7, Label: "48 Khz (0x0080)"},
	{Index: 8, Label: "88.2 Khz (0x0100)"},
	{Index: 9, Label: "96 Khz (0x0200)"},
	{Index: 10, Label: "176.4 Khz (0x0400)"},
	{Index: 11, Label: "192 Khz (0x0800)"},
	{Index: 12, Label: "384 Khz (0x1000)"},
	{Index: 13, Label: "RFU (0x2000)"},
	{Index: 14, Label: "RFU (0x4000)"},
	{Index: 15, Label: "RFU (0x8000)"},
}

var durationTable = bitfield.Table{
	{Index: 0, Label: "7.5 ms (0x01)"},
	{Index: 1, Label: "10 ms (0x02)"},
	{Index: 2, Label: "RFU (0x04)"},
	{Index: 3, Label: "RFU (0x08)"},
	{Index: 4, Label: "7.5 ms preferred (0x10)"},
	{Index: 5, Label: "10 ms preferred (0x20)"},
	{Index: 6, Label: "RFU (0x40)"},
	{Index: 7, Label: "RFU (0x80)"},
}

var channelCountTable = bitfield.Table{
	{Index: 0, Label: "1 channel (0x01)"},
	{Index: 1, Label: "2 channels (0x02)"},
	{Index: 2, Label: "3 channels (0x04)"},
	{Index: 3, Label: "4 channels (0x08)"},
	{Index: 4, Label: "5 channels (0x10)"},
	{Index: 5, Label: "6 channels (0x20)"},
	{Index: 6, Label: "7 channels (0x40)"},
	{Index: 7, Label: "8 channels (0x80)"},
}

var locationTable = bitfield.Table{
	{Index: 0, Label: "Front Left (0x00000001)"},
	{Index: 1, Label: "Front Right (0x00000002)"},
	{Index: 2, Label: "Front Center (0x00000004)"},
	{Index: 3, Label: "Low Frequency Effects 1 (0x00000008)"},
	{Index: 4, Label: "Back Left (0x00000010)"},
	{Index: 5, Label: "Back Right (0x00000020)"},
	{Index: 6, Label: "Front Left of Center (0x00000040)"},
	{Index: 7, Label: "Front Right of Center (0x00000080)"},
	{Index: 8, Label: "Back Center (0x00000100)"},
	{Index: 9, Label: "Low Frequency Effects 2 (0x00000200)"},
	{Index: 10, Label: "Side Left (0x00000400)"},
	{Index: 11, Label: "Side Right (0x00000800)"},
	{Index: 12, Label: "Top Front Left (0x00001000)"},
	{Index: 13, Label: "Top Front Right (0x00002000)"},
	{Index: 14, Label: "Top Front Center (0x00004000)"},
	{Index: 15, Label: "Top Center (0x00008000)"},
	{Index: 16, Label: "Top Back Left (0x00010000)"},
	{Index: 17, Label: "Top Back Right (0x00020000)"},
	{Index: 18, Label: "Top Side Left (0x00040000)"},
	{Index: 19, Label: "Top Side Right (0x00080000)"},
	{Index: 20, Label: "Top Back Center (0x00100000)"},
	{Index: 21, Label: "Bottom Front Center (0x00200000)"},
	{Index: 22, Label: "Bottom Front Left (0x00400000)"},
	{Index: 23, Label: "Bottom Front Right (0x00800000)"},
	{Index: 24, Label: "Front Left Wide (0x01000000)"},
	{Index: 25, Label: "Front Right Wide (0x02000000)"},
	{Index: 26, Label: "Left Surround (0x04000000)"},
	{Index: 27, Label: "Right Surround (0x08000000)"},
	{Index: 28, Label: "RFU (0x10000000)"},
	{Index: 29, Label: "RFU (0x20000000)"},
	{Index: 30, Label: "RFU (0x40000000)"},
	{Index: 31, Label: "RFU (0x80000000)"},
}

// Codec specific capabilities.
var capabilityTable = ltv.Table{
	0x01: {Name: "Sampling Frequencies", Decode: decodeFrequencies},
	0x02: {Name: "Frame Duration", Decode: decodeDurations},
	0x03: {Name: "Audio Channel Count", Decode: decodeChannelCounts},
	0x04: {Name: "Frame Length", Decode: decodeFrameLengthRange},
	0x05: {Name: "Max SDU", Decode: decodeMaxSDU},
}

var metadataTable = ltv.Table{
	0x01: {Name: "Preferred Context", Decode: contextDecoder("Preferred Context")},
	0x02: {Name: "Context", Decode: contextDecoder("Context")},
	0x03: {Name: "Program Info", Decode: decodeProgramInfo},
	0x04: {Name: "Language", Decode: decodeLanguage},
}

func decodeFrequencies(f *frame.Frame, p *display.Printer) error {
	v, err := f.LE16()
	if err != nil {
		return err
	}
	p.Field("Sampling Frequencies", "0x%4.4x", v)
	p.Nested().Bits(16, uint64(v), frequencyTable)
	return nil
}

func decodeDurations(f *frame.Frame, p *display.Printer) error {
	v, err := f.U8()
	if err != nil {
		return err
	}
	p.Field("Frame Duration", "0x%2.2x", v)
	p.Nested().Bits(8, uint64(v), durationTable)
	return nil
}

func decodeChannelCounts(f *frame.Frame, p *display.Printer) error {
	v, err := f.U8()
	if err != nil {
		return err
	}
	p.Field("Audio Channel Count", "0x%2.2x", v)
	p.Nested().Bits(8, uint64(v), channelCountTable)
	return nil
}

func decodeFrameLengthRange(f *frame.Frame, p *display.Printer) error {
	lo, err := f.LE16()
	if err != nil {
		return err
	}
	hi, err := f.LE16()
	if err != nil {
		return err
	}
	p.Field("Frame Length", "%d (0x%4.4x) - %d (0x%4.4x)", lo, lo, hi, hi)
	return nil
}

func decodeMaxSDU(f *frame.Frame, p *display.Printer) error {
	v, err := f.U8()
	if err != nil {
		return err
	}
	p.Field("Max SDU", "%d (0x%2.2x)", v, v)
	return nil
}

func contextDecoder(label string) ltv.Func {
	return func(f *frame.Frame, p *display.Printer) error {
		v, err := f.LE16()
		if err != nil {
			return err
		}
		p.Field(label, "0x%4.4x", v)
		p.Nested().Bits(16, uint64(v), contextTable)
		return nil
	}
}

func decodeProgramInfo(f *frame.Frame, p *display.Printer) error {
	b, err := f.Pull(f.Len())
	if err != nil {
		return err
	}
	p.Field("Program Info", "%s", string(b))
	return nil
}

func decodeLanguage(f *frame.Frame, p *display.Printer) error {
	v, err := f.LE24()
	if err != nil {
		return err
	}
	p.Field("Language", "0x%6.6x", v)
	return nil
}

// PAC decodes a Sink PAC or Source PAC value.
func PAC(f *frame.Frame, p *display.Printer) {
	defer dumpRest(f, p)

	num, err := readU8(f, p, "Number of PAC(s)")
	if err != nil {
		return
	}
	p.Field("Number of PAC(s)", "%d", num)

	for i := 0; i < int(num); i++ {
		p.Field("PAC", "#%d", i)
		np := p.Nested()

		if printCodec(f, np) != nil {
			return
		}
		if printLV(f, np, "Codec Specific Capabilities", capabilityTable) != nil {
			return
		}
		if printLV(f, np, "Metadata", metadataTable) != nil {
			return
		}
	}
}

// Location decodes a Sink or Source Audio Locations value.
func Location(f *frame.Frame, p *display.Printer) {
	defer dumpRest(f, p)
	printLocation(f, p)
}

func printLocation(f *frame.Frame, p *display.Printer) error {
	v, err := f.LE32()
	if err != nil {
		p.Error("Location", err)
		return err
	}
	p.Field("Location", "0x%8.8x", v)
	p.Nested().Bits(32, uint64(v), locationTable)
	return nil
}

// Contexts decodes an Available or Supported Audio Contexts value.
func Contexts(f *frame.Frame, p *display.Printer) {
	defer dumpRest(f, p)

	snk, err := readLE16(f, p, "Sink Context")
	if err != nil {
		return
	}
	p.Field("Sink Context", "0x%4.4x", snk)
	p.Nested().Bits(16, uint64(snk), contextTable)

	src, err := readLE16(f, p, "Source Context")
	if err != nil {
		return
	}
	p.Field("Source Context", "0x%4.4x", src)
	p.Nested().Bits(16, uint64(src), contextTable)
}
