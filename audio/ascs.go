package audio

import (
	"fmt"

	"github.com/rigado/attmon/bitfield"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
	"github.com/rigado/attmon/ltv"
)

// State is the state of an Audio Stream Endpoint.
type State uint8

const (
	StateIdle            State = 0x00
	StateCodecConfigured State = 0x01
	StateQoSConfigured   State = 0x02
	StateEnabling        State = 0x03
	StateStreaming       State = 0x04
	StateDisabling       State = 0x05
	StateReleasing       State = 0x06
)

var stateNames = map[State]string{
	StateIdle:            "Idle",
	StateCodecConfigured: "Codec Configured",
	StateQoSConfigured:   "QoS Configured",
	StateEnabling:        "Enabling",
	StateStreaming:       "Streaming",
	StateDisabling:       "Disabling",
	StateReleasing:       "Releasing",
}

func (s State) String() string {
	return label(stateNames[s], uint8(s))
}

// ResponseCode is the per-ASE result in an ASE Control Point notification.
type ResponseCode uint8

var responseCodes = map[ResponseCode]string{
	0x00: "Success",
	0x01: "Unsupported Opcode",
	0x02: "Invalid Length",
	0x03: "Invalid ASE ID",
	0x04: "Invalid ASE State",
	0x05: "Invalid ASE Direction",
	0x06: "Unsupported Audio Capabilities",
	0x07: "Unsupported Configuration",
	0x08: "Rejected Configuration",
	0x09: "Invalid Configuration",
	0x0a: "Unsupported Metadata",
	0x0b: "Rejected Metadata",
	0x0c: "Invalid Metadata",
	0x0d: "Insufficient Resources",
	0x0e: "Unspecified Error",
}

func (c ResponseCode) String() string {
	return label(responseCodes[c], uint8(c))
}

// Reason qualifies a ResponseCode.
type Reason uint8

var reasons = map[Reason]string{
	0x00: "None",
	0x01: "ASE ID",
	0x02: "Codec Specific Configuration",
	0x03: "SDU Interval",
	0x04: "Framing",
	0x05: "PHY",
	0x06: "Max SDU",
	0x07: "RTN",
	0x08: "Max Transport Latency",
	0x09: "Presentation Delay",
	0x0a: "Invalid ASE/CIS Mapping",
}

func (r Reason) String() string {
	return label(reasons[r], uint8(r))
}

func label(name string, v uint8) string {
	if name == "" {
		name = "Reserved"
	}
	return fmt.Sprintf("%s (0x%2.2x)", name, v)
}

var preferredPHYTable = bitfield.Table{
	{Index: 0, Label: "LE 1M PHY preferred (0x01)"},
	{Index: 1, Label: "LE 2M PHY preferred (0x02)"},
	{Index: 2, Label: "LE Codec PHY preferred (0x04)"},
}

var phyTable = bitfield.Table{
	{Index: 0, Label: "LE 1M PHY (0x01)"},
	{Index: 1, Label: "LE 2M PHY (0x02)"},
	{Index: 2, Label: "LE Codec PHY (0x04)"},
}

var frequencies = map[uint8]string{
	0x01: "8 Khz",
	0x02: "11.25 Khz",
	0x03: "16 Khz",
	0x04: "22.05 Khz",
	0x05: "24 Khz",
	0x06: "32 Khz",
	0x07: "44.1 Khz",
	0x08: "48 Khz",
	0x09: "88.2 Khz",
	0x0a: "96 Khz",
	0x0b: "176.4 Khz",
	0x0c: "192 Khz",
	0x0d: "384 Khz",
}

var durations = map[uint8]string{
	0x00: "7.5 ms",
	0x01: "10 ms",
}

// Codec specific configuration.
var configurationTable = ltv.Table{
	0x01: {Name: "Sampling Frequency", Decode: enumDecoder("Sampling Frequency", frequencies)},
	0x02: {Name: "Frame Duration", Decode: enumDecoder("Frame Duration", durations)},
	0x03: {Name: "Location", Decode: func(f *frame.Frame, p *display.Printer) error {
		v, err := f.LE32()
		if err != nil {
			return err
		}
		p.Field("Location", "0x%8.8x", v)
		p.Nested().Bits(32, uint64(v), locationTable)
		return nil
	}},
	0x04: {Name: "Frame Length", Decode: func(f *frame.Frame, p *display.Printer) error {
		v, err := f.LE16()
		if err != nil {
			return err
		}
		p.Field("Frame Length", "%d (0x%4.4x)", v, v)
		return nil
	}},
	0x05: {Name: "Frame Blocks per SDU", Decode: func(f *frame.Frame, p *display.Printer) error {
		v, err := f.U8()
		if err != nil {
			return err
		}
		p.Field("Frame Blocks per SDU", "%d (0x%2.2x)", v, v)
		return nil
	}},
}

func enumDecoder(name string, names map[uint8]string) ltv.Func {
	return func(f *frame.Frame, p *display.Printer) error {
		v, err := f.U8()
		if err != nil {
			return err
		}
		n, ok := names[v]
		if !ok {
			n = "RFU"
		}
		p.Field(name, "%s (0x%2.2x)", n, v)
		return nil
	}
}

func printEnumU8(f *frame.Frame, p *display.Printer, name string, names map[uint8]string) error {
	v, err := readU8(f, p, name)
	if err != nil {
		return err
	}
	p.Field(name, "%s", label(names[v], v))
	return nil
}

func printPHY(f *frame.Frame, p *display.Printer, name string, t bitfield.Table) error {
	v, err := readU8(f, p, name)
	if err != nil {
		return err
	}
	p.Field(name, "0x%2.2x", v)
	p.Nested().Bits(8, uint64(v), t)
	return nil
}

func printDecimalU8(f *frame.Frame, p *display.Printer, name string) error {
	v, err := readU8(f, p, name)
	if err == nil {
		p.Field(name, "%d", v)
	}
	return err
}

func printDecimalLE16(f *frame.Frame, p *display.Printer, name string) error {
	v, err := readLE16(f, p, name)
	if err == nil {
		p.Field(name, "%d", v)
	}
	return err
}

func printLE24(f *frame.Frame, p *display.Printer, name, unit string) error {
	v, err := readLE24(f, p, name)
	if err == nil {
		p.Field(name, "%d %s", v, unit)
	}
	return err
}

var preferredFraming = map[uint8]string{
	0x00: "Unframed PDUs supported",
	0x01: "Unframed PDUs not supported",
}

var framing = map[uint8]string{
	0x00: "Unframed",
	0x01: "Framed",
}

var targetLatencies = map[uint8]string{
	0x01: "Low Latency",
	0x02: "Balance Latency/Reliability",
	0x03: "High Reliability",
}

// steps runs decoders in order until one fails.
func steps(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func printConfig(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printEnumU8(f, p, "Framing", preferredFraming) },
		func() error { return printPHY(f, p, "PHY", preferredPHYTable) },
		func() error { return printDecimalU8(f, p, "RTN") },
		func() error { return printDecimalLE16(f, p, "Max Transport Latency") },
		func() error { return printLE24(f, p, "Presentation Delay Min", "us") },
		func() error { return printLE24(f, p, "Presentation Delay Max", "us") },
		func() error { return printLE24(f, p, "Preferred Presentation Delay Min", "us") },
		func() error { return printLE24(f, p, "Preferred Presentation Delay Max", "us") },
		func() error { return printCodec(f, p) },
		func() error { return printLV(f, p, "Codec Specific Configuration", configurationTable) },
	)
}

func printQoS(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printU8(f, p, "CIG ID") },
		func() error { return printU8(f, p, "CIS ID") },
		func() error { return printLE24(f, p, "SDU Interval", "usec") },
		func() error { return printEnumU8(f, p, "Framing", framing) },
		func() error { return printPHY(f, p, "PHY", phyTable) },
		func() error { return printDecimalLE16(f, p, "Max SDU") },
		func() error { return printDecimalU8(f, p, "RTN") },
		func() error { return printDecimalLE16(f, p, "Max Transport Latency") },
		func() error { return printLE24(f, p, "Presentation Delay", "us") },
	)
}

func printMetadataStatus(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printU8(f, p, "CIG ID") },
		func() error { return printU8(f, p, "CIS ID") },
		func() error { return printLV(f, p, "Metadata", metadataTable) },
	)
}

// ASE decodes a Sink ASE or Source ASE value.
func ASE(f *frame.Frame, p *display.Printer) {
	defer dumpRest(f, p)

	id, err := readU8(f, p, "ASE ID")
	if err != nil {
		return
	}
	p.Field("ASE ID", "%d", id)

	v, err := readU8(f, p, "State")
	if err != nil {
		return
	}
	state := State(v)
	p.Field("State", "%s", state)

	switch state {
	case StateCodecConfigured:
		printConfig(f, p.Nested())
	case StateQoSConfigured:
		printQoS(f, p.Nested())
	case StateEnabling, StateStreaming, StateDisabling:
		printMetadataStatus(f, p.Nested())
	}
}

// Opcode is an ASE Control Point operation.
type Opcode uint8

type aseCommand struct {
	name   string
	decode func(f *frame.Frame, p *display.Printer) error
}

var aseCommands = []aseCommand{
	0x01: {"Codec Configuration", configCommand},
	0x02: {"QoS Configuration", qosCommand},
	0x03: {"Enable", metadataCommand},
	0x04: {"Receiver Start Ready", idCommand},
	0x05: {"Disable", idCommand},
	0x06: {"Receiver Stop Ready", idCommand},
	0x07: {"Update Metadata", metadataCommand},
	0x08: {"Release", idCommand},
}

// command returns the entry for op, nil when op is outside the table or
// names no operation.
func command(op Opcode) *aseCommand {
	if int(op) >= len(aseCommands) || aseCommands[op].decode == nil {
		return nil
	}
	return &aseCommands[op]
}

func (op Opcode) String() string {
	if c := command(op); c != nil {
		return label(c.name, uint8(op))
	}
	return label("", uint8(op))
}

func idCommand(f *frame.Frame, p *display.Printer) error {
	return printU8(f, p, "ASE ID")
}

func configCommand(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printU8(f, p, "ASE ID") },
		func() error { return printEnumU8(f, p, "Target Latency", targetLatencies) },
		func() error { return printPHY(f, p, "PHY", phyTable) },
		func() error { return printCodec(f, p) },
		func() error { return printLV(f, p, "Codec Specific Configuration", configurationTable) },
	)
}

func qosCommand(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printU8(f, p, "ASE ID") },
		func() error { return printU8(f, p, "CIG ID") },
		func() error { return printU8(f, p, "CIS ID") },
		func() error { return printLE24(f, p, "SDU Interval", "usec") },
		func() error { return printEnumU8(f, p, "Framing", framing) },
		func() error { return printPHY(f, p, "PHY", phyTable) },
		func() error { return printDecimalLE16(f, p, "Max SDU") },
		func() error { return printDecimalU8(f, p, "RTN") },
		func() error { return printDecimalLE16(f, p, "Max Transport Latency") },
		func() error { return printLE24(f, p, "Presentation Delay", "us") },
	)
}

func metadataCommand(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printU8(f, p, "ASE ID") },
		func() error { return printLV(f, p, "Metadata", metadataTable) },
	)
}

func responseEntry(f *frame.Frame, p *display.Printer) error {
	return steps(
		func() error { return printU8(f, p, "ASE ID") },
		func() error {
			v, err := readU8(f, p, "ASE Response Code")
			if err == nil {
				p.Field("ASE Response Code", "%s", ResponseCode(v))
			}
			return err
		},
		func() error {
			v, err := readU8(f, p, "ASE Response Reason")
			if err == nil {
				p.Field("ASE Response Reason", "%s", Reason(v))
			}
			return err
		},
	)
}

// forEachASE reads the opcode and ASE count, then runs entry for at most
// count entries while bytes remain, stopping at the first failed entry.
func forEachASE(f *frame.Frame, p *display.Printer, entry func(*aseCommand, *frame.Frame, *display.Printer) error) {
	v, err := readU8(f, p, "Opcode")
	if err != nil {
		return
	}
	num, err := readU8(f, p, "Number of ASE(s)")
	if err != nil {
		return
	}

	op := Opcode(v)
	cmd := command(op)
	p.Field("Opcode", "%s", op)
	if cmd == nil {
		return
	}
	p.Field("Number of ASE(s)", "%d", num)

	for i := 0; i < int(num) && f.Len() > 0; i++ {
		p.Field("ASE", "#%d", i)
		if entry(cmd, f, p.Nested()) != nil {
			return
		}
	}
}

// ControlPoint decodes a write to the ASE Control Point.
func ControlPoint(f *frame.Frame, p *display.Printer) {
	defer dumpRest(f, p)
	forEachASE(f, p, func(c *aseCommand, f *frame.Frame, p *display.Printer) error {
		return c.decode(f, p)
	})
}

// ControlPointResponse decodes an ASE Control Point notification.
func ControlPointResponse(f *frame.Frame, p *display.Printer) {
	defer dumpRest(f, p)
	forEachASE(f, p, func(_ *aseCommand, f *frame.Frame, p *display.Printer) error {
		return responseEntry(f, p)
	})
}
