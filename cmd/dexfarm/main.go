// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/dexfarm/consts"
)

func main() {
	parser := argparse.NewParser(consts.Name, "Replays AMM and farming plans against a local chain")
	cmds := []Cmd{&runCmd{}, &addressesCmd{}}
	for _, c := range cmds {
		c.New(parser)
	}
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	for _, c := range cmds {
		if !c.Happened() {
			continue
		}
		if err := c.Run(ctx, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			cancel()
			os.Exit(1)
		}
	}
}
