//go:build !linux
// +build !linux

package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var monitorCommand = cli.Command{
	Name:  "monitor",
	Usage: "Decode live traffic (Linux only)",
	Action: func(c *cli.Context) error {
		return errors.New("live capture needs the Linux monitor channel")
	},
}
