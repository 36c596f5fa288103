// Package display carries decoded fields from the dissectors to whatever
// renders them.
package display

import "fmt"

// Kind tells a sink how to present an Event.
type Kind uint8

const (
	KindOpcode      Kind = iota // start of a PDU
	KindField                   // label: value
	KindFlag                    // a set bit with a known meaning
	KindUnknownBits             // set bits without a known meaning
	KindHex                     // label: raw bytes
	KindDump                    // unlabelled raw bytes
	KindError                   // decoding of the enclosing structure stopped
)

var kindNames = []string{"opcode", "field", "flag", "unknown", "hex", "dump", "error"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event is one emitted field. Depth is the nesting level of the structure
// the field belongs to, 0 for the PDU itself.
type Event struct {
	Kind  Kind   `json:"kind" cbor:"kind"`
	Depth int    `json:"depth" cbor:"depth"`
	Label string `json:"label,omitempty" cbor:"label,omitempty"`
	Value string `json:"value,omitempty" cbor:"value,omitempty"`
	Data  []byte `json:"data,omitempty" cbor:"data,omitempty"`
	Err   string `json:"error,omitempty" cbor:"error,omitempty"`

	// Set on KindOpcode only.
	Conn uint16 `json:"conn,omitempty" cbor:"conn,omitempty"`
	In   bool   `json:"in,omitempty" cbor:"in,omitempty"`
	CID  uint16 `json:"cid,omitempty" cbor:"cid,omitempty"`
	Size int    `json:"size,omitempty" cbor:"size,omitempty"`
}

// Sink receives events in emission order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})
