package attmon

import (
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/metrics"
)

// DecoderOption is implemented by decoders that accept configuration options.
type DecoderOption interface {
	SetSink(display.Sink) error
	SetGattCache(GattCache) error
	SetLogger(Logger) error
	SetMaxPendingReads(int) error
	SetMetrics(*metrics.Metrics) error
	SetSigningKey(peer Addr, csrk []byte) error
}

// An Option is a configuration function, which configures the decoder.
type Option func(DecoderOption) error

// OptSink sets where decoded fields are emitted.
func OptSink(s display.Sink) Option {
	return func(opt DecoderOption) error {
		return opt.SetSink(s)
	}
}

// OptGattCache sets the store persisted attribute databases are loaded from.
func OptGattCache(c GattCache) Option {
	return func(opt DecoderOption) error {
		return opt.SetGattCache(c)
	}
}

// OptLogger overrides the package logger.
func OptLogger(l Logger) Option {
	return func(opt DecoderOption) error {
		return opt.SetLogger(l)
	}
}

// OptMaxPendingReads caps the outstanding read requests kept per
// connection. Zero keeps them all.
func OptMaxPendingReads(n int) Option {
	return func(opt DecoderOption) error {
		return opt.SetMaxPendingReads(n)
	}
}

// OptMetrics enables decode metrics.
func OptMetrics(m *metrics.Metrics) Option {
	return func(opt DecoderOption) error {
		return opt.SetMetrics(m)
	}
}

// OptSigningKey registers the CSRK a peer signs its writes with. csrk is in
// display (most significant byte first) order.
func OptSigningKey(peer Addr, csrk []byte) Option {
	return func(opt DecoderOption) error {
		return opt.SetSigningKey(peer, csrk)
	}
}
