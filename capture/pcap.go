package capture

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/hci"
)

// Bluetooth link types.
const (
	LinkTypeH4           layers.LinkType = 187 // DLT_BLUETOOTH_HCI_H4
	LinkTypeH4WithPhdr   layers.LinkType = 201 // DLT_BLUETOOTH_HCI_H4_WITH_PHDR
	LinkTypeLinuxMonitor layers.LinkType = 254 // DLT_BLUETOOTH_LINUX_MONITOR
)

var ErrUnsupportedLinkType = errors.New("unsupported link type")

type packetSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

type pcapReader struct {
	src packetSource
}

func newPcapReader(r io.Reader) (Reader, error) {
	src, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "pcap")
	}
	return newPacketReader(src)
}

func newPcapngReader(r io.Reader) (Reader, error) {
	src, err := pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		return nil, errors.Wrap(err, "pcapng")
	}
	return newPacketReader(src)
}

func newPacketReader(src packetSource) (Reader, error) {
	switch lt := src.LinkType(); lt {
	case LinkTypeH4, LinkTypeH4WithPhdr, LinkTypeLinuxMonitor:
	default:
		return nil, errors.Wrapf(ErrUnsupportedLinkType, "link type %d", lt)
	}
	return &pcapReader{src: src}, nil
}

func (r *pcapReader) Next() (Record, error) {
	for {
		data, ci, err := r.src.ReadPacketData()
		if err != nil {
			return Record{}, err
		}

		rec, ok, err := r.decode(data)
		if err != nil {
			attmon.GetLogger().Debugf("capture: skipping record: %v", err)
			continue
		}
		if ok {
			rec.Timestamp = ci.Timestamp
			return rec, nil
		}
	}
}

func (r *pcapReader) decode(b []byte) (Record, bool, error) {
	switch r.src.LinkType() {
	case LinkTypeH4WithPhdr:
		if len(b) < 4 {
			return Record{}, false, errors.New("short h4 pseudo header")
		}
		rec, err := fromH4(b[4:])
		rec.In = binary.BigEndian.Uint32(b) == 1
		return rec, err == nil, err
	case LinkTypeLinuxMonitor:
		if len(b) < 4 {
			return Record{}, false, errors.New("short monitor header")
		}
		rec, ok := FromMonitor(binary.BigEndian.Uint16(b[2:]), binary.BigEndian.Uint16(b), b[4:], time.Time{})
		return rec, ok, nil
	default:
		rec, err := fromH4(b)
		return rec, err == nil, err
	}
}

// fromH4 splits an H4 packet. Without a pseudo header only events are known
// to come from the controller.
func fromH4(b []byte) (Record, error) {
	if len(b) < 1 {
		return Record{}, errors.New("empty h4 packet")
	}
	return Record{Type: b[0], In: b[0] == hci.PktTypeEvent, Data: b[1:]}, nil
}
