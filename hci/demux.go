// Package hci follows HCI traffic far enough to hand ATT PDUs to a decoder:
// it recombines fragmented ACL data and tracks connections from events.
package hci

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/att"
	"github.com/rigado/attmon/metrics"
)

// Handler receives ATT PDUs and connection lifetimes. *att.Decoder is one.
type Handler interface {
	Decode(att.Packet)
	OpenConn(handle uint16, local, peer attmon.Addr)
	CloseConn(handle uint16)
}

type fragKey struct {
	handle uint16
	in     bool
}

// Demux splits HCI packets of one controller.
type Demux struct {
	h       Handler
	logger  attmon.Logger
	metrics *metrics.Metrics

	local attmon.Addr
	frags map[fragKey]Pdu
}

// NewDemux returns a demultiplexer delivering to h. m may be nil.
func NewDemux(h Handler, m *metrics.Metrics) *Demux {
	return &Demux{
		h:       h,
		logger:  attmon.GetLogger().ChildLogger(map[string]interface{}{"pkg": "hci"}),
		metrics: m,
		frags:   make(map[fragKey]Pdu),
	}
}

// SetLocal records the controller address when it is learnt outside the
// HCI traffic itself.
func (d *Demux) SetLocal(a attmon.Addr) {
	d.local = a
}

// Local returns the controller address, nil until known.
func (d *Demux) Local() attmon.Addr {
	return d.local
}

// Handle processes one packet of type typ. in is set for packets sent by
// the controller.
func (d *Demux) Handle(typ uint8, in bool, b []byte) error {
	if d.metrics != nil {
		d.metrics.CaptureFrames.WithLabelValues(PktTypeName(typ)).Inc()
	}

	switch typ {
	case PktTypeACLData:
		return d.handleACL(in, Packet(b))
	case PktTypeEvent:
		if !in {
			return nil
		}
		return d.handleEvent(Event(b))
	}
	return nil
}

func (d *Demux) handleACL(in bool, pkt Packet) error {
	if !pkt.valid() {
		return errors.Errorf("short acl packet [% X]", []byte(pkt))
	}

	k := fragKey{pkt.handle(), in}
	var p Pdu

	switch pkt.pbf() {
	case pbfContinuing:
		prev, ok := d.frags[k]
		if !ok {
			return errors.Errorf("acl 0x%04x: continuation without start", k.handle)
		}
		p = append(prev, pkt.data()...)
	case pbfHostToControllerStart, pbfControllerToHostStart, pbfCompleteL2CAPPDU:
		if _, ok := d.frags[k]; ok {
			d.logger.Debugf("acl 0x%04x: dropping incomplete pdu", k.handle)
		}
		p = append(Pdu(nil), pkt.data()...)
	}

	if !p.complete() {
		d.frags[k] = p
		return nil
	}
	delete(d.frags, k)

	if p.cid() != att.CIDAttribute {
		return nil
	}
	d.h.Decode(att.Packet{Conn: k.handle, In: in, CID: p.cid(), Data: p.payload()})
	return nil
}

func (d *Demux) handleEvent(e Event) error {
	code, err := e.CodeWErr()
	if err != nil {
		return errors.Wrap(err, "event code")
	}
	params, err := e.ParametersWErr()
	if err != nil {
		return errors.Wrapf(err, "event 0x%02x parameters", code)
	}

	switch code {
	case evtDisconnectionComplete:
		return d.disconnectionComplete(DisconnectionComplete(params))
	case evtLEMeta:
		return d.leMeta(LEConnectionComplete(params))
	case evtCommandComplete:
		return d.commandComplete(CommandComplete(params))
	}
	return nil
}

func (d *Demux) disconnectionComplete(e DisconnectionComplete) error {
	status, err := e.StatusWErr()
	if err != nil {
		return errors.Wrap(err, "disconnection complete")
	}
	h, err := e.ConnectionHandleWErr()
	if err != nil {
		return errors.Wrap(err, "disconnection complete")
	}
	reason, err := e.ReasonWErr()
	if err != nil {
		return errors.Wrap(err, "disconnection complete")
	}
	if status != 0x00 {
		return nil
	}

	d.logger.Debugf("connection 0x%04x disconnected, reason 0x%02x", h, reason)
	delete(d.frags, fragKey{h, true})
	delete(d.frags, fragKey{h, false})
	d.h.CloseConn(h)
	return nil
}

func (d *Demux) leMeta(e LEConnectionComplete) error {
	sub, err := e.SubeventCodeWErr()
	if err != nil {
		return errors.Wrap(err, "le meta")
	}
	if sub != subevtLEConnectionComplete && sub != subevtLEEnhancedConnectionComplete {
		return nil
	}

	status, err := e.StatusWErr()
	if err != nil {
		return errors.Wrap(err, "le connection complete")
	}
	if status != 0x00 {
		return nil
	}
	h, err := e.ConnectionHandleWErr()
	if err != nil {
		return errors.Wrap(err, "le connection complete")
	}
	role, err := e.RoleWErr()
	if err != nil {
		return errors.Wrap(err, "le connection complete")
	}
	a, err := e.PeerAddressWErr()
	if err != nil {
		return errors.Wrap(err, "le connection complete")
	}

	peer := attmon.AddrFromWire(a)
	d.logger.Debugf("connection 0x%04x to %v as %s", h, peer, roleName(role))
	d.h.OpenConn(h, d.local, peer)
	return nil
}

func (d *Demux) commandComplete(e CommandComplete) error {
	op, err := e.CommandOpcodeWErr()
	if err != nil {
		return errors.Wrap(err, "command complete")
	}
	if op != opReadBDADDR {
		return nil
	}

	rp, err := e.ReturnParametersWErr()
	if err != nil || len(rp) < 7 {
		return errors.New("command complete: short read bd_addr return")
	}
	if rp[0] != 0x00 {
		return nil
	}
	d.local = attmon.AddrFromWire(rp[1:7])
	d.logger.Debugf("controller address %v", d.local)
	return nil
}

func roleName(r uint8) string {
	switch r {
	case 0x00:
		return "central"
	case 0x01:
		return "peripheral"
	}
	return fmt.Sprintf("role 0x%02x", r)
}
