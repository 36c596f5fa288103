package display

import (
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
)

type encoder interface {
	Encode(v interface{}) error
}

// EncoderSink writes each event as one self-delimiting record.
type EncoderSink struct {
	enc encoder
	mu  sync.Mutex
	err error
}

// NewJSONSink writes newline-delimited JSON.
func NewJSONSink(w io.Writer) *EncoderSink {
	return &EncoderSink{enc: jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)}
}

// NewCBORSink writes a CBOR sequence.
func NewCBORSink(w io.Writer) *EncoderSink {
	return &EncoderSink{enc: cbor.NewEncoder(w)}
}

func (s *EncoderSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(e)
}

// Err returns the first encoding error.
func (s *EncoderSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
