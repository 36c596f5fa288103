package hci

import "encoding/binary"

// Packet implements HCI ACL Data Packet [Vol 2, Part E, 5.4.2]
// Packet boundary flags , bit[5:6] of handle field's MSB
// Broadcast flags. bit[7:8] of handle field's MSB
type Packet []byte

func (a Packet) valid() bool    { return len(a) >= 4 && len(a) >= 4+a.dlen() }
func (a Packet) handle() uint16 { return uint16(a[0]) | (uint16(a[1]&0x0f) << 8) }
func (a Packet) pbf() int       { return (int(a[1]) >> 4) & 0x3 }
func (a Packet) dlen() int      { return int(a[2]) | (int(a[3]) << 8) }
func (a Packet) data() []byte   { return a[4 : 4+a.dlen()] }

// Pdu is a basic L2CAP frame.
type Pdu []byte

func (p Pdu) complete() bool  { return len(p) >= 4 && len(p) >= 4+p.dlen() }
func (p Pdu) dlen() int       { return int(binary.LittleEndian.Uint16(p[0:2])) }
func (p Pdu) cid() uint16     { return binary.LittleEndian.Uint16(p[2:4]) }
func (p Pdu) payload() []byte { return p[4 : 4+p.dlen()] }
