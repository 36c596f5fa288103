package capture

import (
	"time"

	"github.com/rigado/attmon"
	"github.com/rigado/attmon/hci"
)

// Linux monitor channel opcodes.
const (
	MonitorNewIndex    = 0x0000
	MonitorDelIndex    = 0x0001
	MonitorCommandPkt  = 0x0002
	MonitorEventPkt    = 0x0003
	MonitorACLTxPkt    = 0x0004
	MonitorACLRxPkt    = 0x0005
	MonitorSCOTxPkt    = 0x0006
	MonitorSCORxPkt    = 0x0007
	MonitorISOTxPkt    = 0x0012
	MonitorISORxPkt    = 0x0013
	monitorNewIndexLen = 16
)

type monitorPkt struct {
	typ uint8
	in  bool
}

var monitorPkts = map[uint16]monitorPkt{
	MonitorCommandPkt: {hci.PktTypeCommand, false},
	MonitorEventPkt:   {hci.PktTypeEvent, true},
	MonitorACLTxPkt:   {hci.PktTypeACLData, false},
	MonitorACLRxPkt:   {hci.PktTypeACLData, true},
	MonitorSCOTxPkt:   {hci.PktTypeSCOData, false},
	MonitorSCORxPkt:   {hci.PktTypeSCOData, true},
	MonitorISOTxPkt:   {hci.PktTypeISOData, false},
	MonitorISORxPkt:   {hci.PktTypeISOData, true},
}

// FromMonitor converts a monitor channel frame. ok is false for opcodes
// that carry no HCI packet.
func FromMonitor(opcode, index uint16, payload []byte, ts time.Time) (rec Record, ok bool) {
	if opcode == MonitorNewIndex {
		if len(payload) < monitorNewIndexLen {
			return Record{}, false
		}
		// type, bus, bdaddr, name
		return Record{Index: index, NewIndex: attmon.AddrFromWire(payload[2:8]), Timestamp: ts}, true
	}

	p, ok := monitorPkts[opcode]
	if !ok {
		return Record{}, false
	}
	return Record{Index: index, Type: p.typ, In: p.in, Data: payload, Timestamp: ts}, true
}
