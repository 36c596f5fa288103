package display

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"
)

// TextSink renders events as indented lines, one PDU per block.
type TextSink struct {
	w   io.Writer
	mu  sync.Mutex
	err error
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Err returns the first write error.
func (s *TextSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TextSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, Format(e))
}

// Format renders a single event, including the trailing newline.
func Format(e Event) string {
	indent := strings.Repeat("  ", e.Depth)

	switch e.Kind {
	case KindOpcode:
		dir := ">"
		if !e.In {
			dir = "<"
		}
		return fmt.Sprintf("%s%s ATT: %s (%s) len %d\n", indent, dir, e.Label, e.Value, e.Size)
	case KindField:
		return fmt.Sprintf("%s%s: %s\n", indent, e.Label, e.Value)
	case KindFlag:
		return fmt.Sprintf("%s%s\n", indent, e.Label)
	case KindUnknownBits:
		return fmt.Sprintf("%s%s (%s)\n", indent, e.Label, e.Value)
	case KindHex:
		return fmt.Sprintf("%s%s: %s\n", indent, e.Label, hex.EncodeToString(e.Data))
	case KindDump:
		return hexdump(indent, e.Data)
	case KindError:
		if e.Label == "" {
			return fmt.Sprintf("%s%s\n", indent, e.Err)
		}
		return fmt.Sprintf("%s%s: %s\n", indent, e.Label, e.Err)
	}
	return ""
}

func hexdump(indent string, b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		n := 16
		if len(b) < n {
			n = len(b)
		}
		line := b[:n]
		b = b[n:]

		sb.WriteString(indent)
		for i := 0; i < 16; i++ {
			if i < len(line) {
				fmt.Fprintf(&sb, "%02x ", line[i])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString(" ")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
