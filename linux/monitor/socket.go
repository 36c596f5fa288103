//go:build linux
// +build linux

// Package monitor reads live HCI traffic of every controller from the
// Linux Bluetooth monitor channel.
package monitor

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/capture"
	"golang.org/x/sys/unix"
)

const (
	hciDevNone        = 0xffff
	hciChannelMonitor = 2
	monitorHeaderLen  = 6
	readTimeout       = 1000
	maxFrameLen       = 1 << 16
	unixPollErrors    = int16(unix.POLLHUP | unix.POLLNVAL | unix.POLLERR)
	unixPollDataIn    = int16(unix.POLLIN)
)

// Socket is a monitor channel socket. It needs CAP_NET_RAW.
type Socket struct {
	fd   int
	buf  []byte
	rmu  sync.Mutex
	done chan struct{}
	cmu  sync.Mutex
}

// Open binds a socket to the monitor channel.
func Open() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "can't create socket")
	}

	sa := unix.SockaddrHCI{Dev: hciDevNone, Channel: hciChannelMonitor}
	if err := unix.Bind(fd, &sa); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "can't bind socket to hci monitor channel")
	}

	return &Socket{fd: fd, buf: make([]byte, monitorHeaderLen+maxFrameLen), done: make(chan struct{})}, nil
}

// Next blocks until the next frame carrying an HCI packet arrives. It
// returns io.EOF once the socket is closed.
func (s *Socket) Next() (capture.Record, error) {
	s.rmu.Lock()
	defer s.rmu.Unlock()

	for {
		if !s.isOpen() {
			return capture.Record{}, io.EOF
		}

		// dont need to add unixPollErrors, they are always returned
		pfds := []unix.PollFd{{Fd: int32(s.fd), Events: unixPollDataIn}}
		if _, err := unix.Poll(pfds, readTimeout); err != nil && err != unix.EINTR {
			return capture.Record{}, errors.Wrap(err, "can't poll monitor socket")
		}
		evts := pfds[0].Revents

		switch {
		case evts&unixPollErrors != 0:
			return capture.Record{}, io.EOF
		case evts&unixPollDataIn == 0:
			continue
		}

		n, err := unix.Read(s.fd, s.buf)
		if err != nil {
			return capture.Record{}, errors.Wrap(err, "can't read monitor socket")
		}

		rec, ok, err := parseFrame(s.buf[:n], time.Now())
		if err != nil {
			attmon.GetLogger().Debugf("monitor: skipping frame: %v", err)
			continue
		}
		if ok {
			return rec, nil
		}
	}
}

// parseFrame splits a monitor frame: opcode, index and length, all
// little-endian, followed by the payload.
func parseFrame(b []byte, ts time.Time) (capture.Record, bool, error) {
	if len(b) < monitorHeaderLen {
		return capture.Record{}, false, errors.Errorf("short monitor frame [% X]", b)
	}
	opcode := binary.LittleEndian.Uint16(b[0:])
	index := binary.LittleEndian.Uint16(b[2:])
	n := int(binary.LittleEndian.Uint16(b[4:]))
	if len(b) < monitorHeaderLen+n {
		return capture.Record{}, false, errors.Errorf("monitor frame claims %d bytes, has %d", n, len(b)-monitorHeaderLen)
	}

	payload := append([]byte(nil), b[monitorHeaderLen:monitorHeaderLen+n]...)
	rec, ok := capture.FromMonitor(opcode, index, payload, ts)
	return rec, ok, nil
}

func (s *Socket) Close() error {
	s.cmu.Lock()
	defer s.cmu.Unlock()

	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
		// a pending Next returns within readTimeout
		s.rmu.Lock()
		err := unix.Close(s.fd)
		s.rmu.Unlock()
		return errors.Wrap(err, "can't close monitor socket")
	}
}

func (s *Socket) isOpen() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}
