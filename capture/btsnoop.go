package capture

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/attmon"
)

// btsnoop datalink types.
const (
	btsnoopH4      = 1002
	btsnoopMonitor = 2001
)

const (
	btsnoopHeaderLen = 16
	btsnoopRecordLen = 24
	btsnoopMaxLen    = 1 << 16

	// microseconds from 0000-01-01 to the Unix epoch
	btsnoopEpoch = 0x00dcddb30f2f8000
)

type btsnoopReader struct {
	r        io.Reader
	datalink uint32
	hdr      [btsnoopRecordLen]byte
}

func newBtsnoopReader(r io.Reader) (Reader, error) {
	var hdr [btsnoopHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "btsnoop header")
	}

	if v := binary.BigEndian.Uint32(hdr[8:]); v != 1 {
		return nil, errors.Errorf("unsupported btsnoop version %d", v)
	}
	dl := binary.BigEndian.Uint32(hdr[12:])
	if dl != btsnoopH4 && dl != btsnoopMonitor {
		return nil, errors.Errorf("unsupported btsnoop datalink %d", dl)
	}
	return &btsnoopReader{r: r, datalink: dl}, nil
}

func (r *btsnoopReader) Next() (Record, error) {
	for {
		if _, err := io.ReadFull(r.r, r.hdr[:]); err != nil {
			if err == io.ErrUnexpectedEOF {
				return Record{}, errors.Wrap(err, "btsnoop record header")
			}
			return Record{}, err
		}

		n := binary.BigEndian.Uint32(r.hdr[4:])
		if n > btsnoopMaxLen {
			return Record{}, errors.Errorf("btsnoop record of %d bytes", n)
		}
		flags := binary.BigEndian.Uint32(r.hdr[8:])
		ts := btsnoopTime(int64(binary.BigEndian.Uint64(r.hdr[16:])))

		b := make([]byte, n)
		if _, err := io.ReadFull(r.r, b); err != nil {
			return Record{}, errors.Wrap(err, "btsnoop record")
		}

		if r.datalink == btsnoopMonitor {
			rec, ok := FromMonitor(uint16(flags), uint16(flags>>16), b, ts)
			if ok {
				return rec, nil
			}
			continue
		}

		rec, err := fromH4(b)
		if err != nil {
			attmon.GetLogger().Debugf("btsnoop: skipping record: %v", err)
			continue
		}
		rec.In = flags&0x01 != 0
		rec.Timestamp = ts
		return rec, nil
	}
}

func btsnoopTime(us int64) time.Time {
	us -= btsnoopEpoch
	return time.Unix(us/1e6, (us%1e6)*1e3).UTC()
}
