package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rigado/attmon"
	"github.com/rigado/attmon/config"
)

var cfg config.Config

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "attmon: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "attmon"
	app.Usage = "Decode Bluetooth ATT traffic"
	app.Version = "0.1.0"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "TOML configuration file"},
		cli.StringFlag{Name: "output, o", Usage: "output format (text / json / cbor)"},
		cli.StringFlag{Name: "log-level", Usage: "log level (debug / info / warn / error)"},
		cli.StringFlag{Name: "storage-dir", Usage: "root of persisted attribute databases"},
		cli.StringFlag{Name: "metrics-addr", Usage: "serve Prometheus metrics on this address"},
	}

	app.Commands = []cli.Command{
		{
			Name:      "read",
			Aliases:   []string{"r"},
			Usage:     "Decode a pcap, pcapng or btsnoop capture",
			ArgsUsage: "<capture>",
			Action:    read,
		},
		{
			Name:      "pdu",
			Aliases:   []string{"p"},
			Usage:     "Decode a single ATT PDU given in hex",
			ArgsUsage: "<hex>",
			Action:    pdu,
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "in", Usage: "PDU was received from the controller"},
				cli.UintFlag{Name: "cid", Value: 0x0004, Usage: "L2CAP channel"},
				cli.UintFlag{Name: "conn", Usage: "HCI connection handle"},
			},
		},
		monitorCommand,
	}

	app.Before = setup
	return app
}

func setup(c *cli.Context) error {
	var err error
	if cfg, err = config.Load(c.String("config")); err != nil {
		return err
	}

	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("storage-dir") {
		cfg.StorageDir = c.String("storage-dir")
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return attmon.SetLogLevel(cfg.LogLevel)
}
