package main

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rigado/attmon/att"
	"github.com/rigado/attmon/capture"
)

func read(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowCommandHelp(c, "read")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "can't open capture")
	}
	defer f.Close()

	r, err := capture.Open(f)
	if err != nil {
		return errors.Wrapf(err, "can't read %s", f.Name())
	}

	s, err := newSession(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return s.feed(r)
}

func pdu(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowCommandHelp(c, "pdu")
	}

	b, err := parseHex(strings.Join(c.Args(), ""))
	if err != nil {
		return err
	}

	s, err := newSession(cfg, os.Stdout)
	if err != nil {
		return err
	}
	s.dec.Decode(att.Packet{
		Conn: uint16(c.Uint("conn")),
		In:   c.Bool("in"),
		CID:  uint16(c.Uint("cid")),
		Data: b,
	})
	return s.sink.Err()
}

// parseHex accepts "02a000", "02 a0 00" and "02:a0:00".
func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid pdu")
	}
	return b, nil
}
