// Package att decodes Attribute Protocol PDUs, resolving attribute handles
// against per-connection GATT databases and correlating reads with their
// responses.
package att

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
	"github.com/rigado/attmon/metrics"
	"github.com/rigado/attmon/sliceops"
)

// Packet is one ATT PDU as delivered by the L2CAP layer.
type Packet struct {
	Conn uint16 // HCI connection handle
	In   bool   // received from the controller
	CID  uint16
	Data []byte
}

// Decoder turns ATT PDUs into display events. It is safe for concurrent
// use; PDUs are decoded one at a time. The setters serve attmon.Option and
// may also be called while decoding.
type Decoder struct {
	mu sync.Mutex

	conns      map[uint16]*connData
	out        display.Sink
	sink       display.Sink // out, counted when metrics are set
	cache      attmon.GattCache
	logger     attmon.Logger
	maxPending int
	metrics    *metrics.Metrics
	keys       map[string][]byte
}

// NewDecoder returns a decoder configured by opts.
func NewDecoder(opts ...attmon.Option) (*Decoder, error) {
	d := &Decoder{
		conns:      make(map[uint16]*connData),
		out:        display.Discard,
		sink:       display.Discard,
		logger:     attmon.GetLogger().ChildLogger(map[string]interface{}{"pkg": "att"}),
		maxPending: DefaultMaxPendingReads,
		keys:       make(map[string][]byte),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Decoder) SetSink(s display.Sink) error {
	if s == nil {
		return errors.New("nil sink")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = s
	d.sink = metrics.Sink(s, d.metrics)
	return nil
}

func (d *Decoder) SetGattCache(c attmon.GattCache) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache = c
	return nil
}

func (d *Decoder) SetLogger(l attmon.Logger) error {
	if l == nil {
		return errors.New("nil logger")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
	return nil
}

// SetMaxPendingReads applies to reads queued from now on.
func (d *Decoder) SetMaxPendingReads(n int) error {
	if n < 0 {
		return errors.Errorf("invalid pending read cap %d", n)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxPending = n
	return nil
}

func (d *Decoder) SetMetrics(m *metrics.Metrics) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.metrics = m
	d.sink = metrics.Sink(d.out, m)
	return nil
}

func (d *Decoder) SetSigningKey(peer attmon.Addr, csrk []byte) error {
	if len(csrk) != 16 {
		return errors.Errorf("csrk for %s must be 16 bytes, got %d", peer, len(csrk))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[peer.String()] = sliceops.SwapBuf(csrk)
	return nil
}

// Decode emits the events for one PDU. Malformed input is reported in the
// output; it never fails the call.
func (d *Decoder) Decode(pkt Packet) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := display.NewPrinter(d.sink)
	if len(pkt.Data) == 0 {
		p.Error("", ErrMalformed)
		return
	}

	op := pkt.Data[0]
	body := pkt.Data[1:]
	e, known := dispatcher[op]

	name := OpcodeName(op)
	p.Opcode(name, op, len(body), pkt.Conn, pkt.In, pkt.CID)
	if d.metrics != nil {
		d.metrics.PDUs.WithLabelValues(name).Inc()
	}

	np := p.Nested()
	if !known || e.handler == nil {
		np.Dump(body)
		return
	}

	switch {
	case e.fixed && len(body) != e.size:
		np.Error("", ErrInvalidSize)
		np.Dump(body)
		return
	case !e.fixed && len(body) < e.size:
		np.Error("", ErrTooShort)
		np.Dump(body)
		return
	}

	e.handler(d, frame.New(pkt.Conn, pkt.In, pkt.CID, body, len(body)), np)
}

// OpenConn starts a connection, discarding any state left under the same
// handle. local and peer locate its persisted attribute databases.
func (d *Decoder) OpenConn(handle uint16, local, peer attmon.Addr) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dropConn(handle)
	c := newConnData(local, peer)
	d.conns[handle] = c
	if d.metrics != nil {
		d.metrics.Connections.Inc()
	}
	d.logger.Debugf("connection 0x%04x opened, local %v peer %v", handle, local, peer)
}

// CloseConn drops the state kept for a connection.
func (d *Decoder) CloseConn(handle uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dropConn(handle) {
		d.logger.Debugf("connection 0x%04x closed", handle)
	}
}

func (d *Decoder) dropConn(handle uint16) bool {
	c, ok := d.conns[handle]
	if !ok {
		return false
	}
	delete(d.conns, handle)

	if d.metrics != nil {
		d.metrics.Connections.Dec()
		d.metrics.PendingReads.Sub(float64(c.reads.len()))
	}
	if n := c.reads.len(); n > 0 {
		d.logger.Debugf("connection 0x%04x closed with %d unanswered reads", handle, n)
	}
	return true
}

// conn returns the state of a connection, creating it on first use.
func (d *Decoder) conn(handle uint16) *connData {
	c, ok := d.conns[handle]
	if !ok {
		c = newConnData(nil, nil)
		d.conns[handle] = c
		if d.metrics != nil {
			d.metrics.Connections.Inc()
		}
	}
	return c
}
