package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rigado/attmon"
	"github.com/rigado/attmon/linux/monitor"
)

var monitorCommand = cli.Command{
	Name:    "monitor",
	Aliases: []string{"m"},
	Usage:   "Decode live traffic of all controllers (needs CAP_NET_RAW)",
	Action:  monitorLive,
}

func monitorLive(c *cli.Context) error {
	sock, err := monitor.Open()
	if err != nil {
		return errors.Wrap(err, "can't open monitor channel")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		if _, ok := <-sigs; ok {
			if err := sock.Close(); err != nil {
				attmon.GetLogger().Errorf("%v", err)
			}
		}
	}()

	s, err := newSession(cfg, os.Stdout)
	if err != nil {
		sock.Close()
		return err
	}
	defer sock.Close()
	return s.feed(sock)
}
