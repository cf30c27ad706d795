// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/akamensky/argparse"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/config"
	"github.com/ava-labs/dexfarm/genesis"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/vm"
)

type Cmd interface {
	New(parser *argparse.Parser)
	Run(ctx context.Context, out io.Writer) error
	Happened() bool
}

var (
	_ Cmd = (*runCmd)(nil)
	_ Cmd = (*addressesCmd)(nil)
)

type runCmd struct {
	cmd *argparse.Command

	config  *string
	genesis *string
	plan    *string
	serve   *bool
}

func (c *runCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("run", "Replays a plan against the chain described by a genesis")
	c.config = c.cmd.String("c", "config", &argparse.Options{Help: "node config file"})
	c.genesis = c.cmd.String("g", "genesis", &argparse.Options{Required: true, Help: "genesis file"})
	c.plan = c.cmd.String("p", "plan", &argparse.Options{Required: true, Help: "plan file, or - for stdin"})
	c.serve = c.cmd.Flag("s", "serve", &argparse.Options{Help: "keep serving the API after the plan finishes"})
}

func (c *runCmd) Happened() bool {
	return c.cmd.Happened()
}

func (c *runCmd) Run(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig(*c.config)
	if err != nil {
		return err
	}
	genesisBytes, err := os.ReadFile(*c.genesis)
	if err != nil {
		return err
	}
	planBytes, err := readPlan(*c.plan)
	if err != nil {
		return err
	}
	plan, err := unmarshalPlan(planBytes)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Stop()
	v, err := vm.New(ctx, log, cfg, genesisBytes)
	if err != nil {
		return err
	}
	defer func() {
		_ = v.Shutdown(context.Background())
	}()

	if len(cfg.API.Address) == 0 {
		return newRunner(log, v, out).Run(ctx, plan)
	}
	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)
	defer stopServing()
	g.Go(func() error {
		return serveAPI(serveCtx, log, cfg.API, v)
	})
	g.Go(func() error {
		if err := newRunner(log, v, out).Run(gctx, plan); err != nil {
			return err
		}
		if !*c.serve {
			stopServing()
		}
		return nil
	})
	return g.Wait()
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.New(b)
}

func readPlan(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// addressesCmd prints the address of everything a genesis names.
type addressesCmd struct {
	cmd *argparse.Command

	genesis *string
}

func (c *addressesCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("addresses", "Prints the addresses a genesis assigns to accounts, tokens, pairs and farms")
	c.genesis = c.cmd.String("g", "genesis", &argparse.Options{Required: true, Help: "genesis file"})
}

func (c *addressesCmd) Happened() bool {
	return c.cmd.Happened()
}

type namedAddress struct {
	Ref     string        `json:"ref"`
	Address codec.Address `json:"address"`
	Bech32  string        `json:"bech32"`
}

func (c *addressesCmd) Run(_ context.Context, out io.Writer) error {
	b, err := os.ReadFile(*c.genesis)
	if err != nil {
		return err
	}
	g, err := genesis.Load(b)
	if err != nil {
		return err
	}
	named, err := genesisAddresses(g)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	for _, n := range named {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return nil
}

func genesisAddresses(g *genesis.Genesis) ([]*namedAddress, error) {
	r, err := g.Resolver()
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(g.Accounts)+len(g.Tokens)+len(g.Pairs)+len(g.Farms))
	for _, a := range g.Accounts {
		refs = append(refs, "@"+a.Name)
	}
	for _, t := range g.Tokens {
		refs = append(refs, "token:"+t.Symbol)
	}
	for _, p := range g.Pairs {
		a, err := r.Resolve(p.TokenA)
		if err != nil {
			return nil, err
		}
		b, err := r.Resolve(p.TokenB)
		if err != nil {
			return nil, err
		}
		pair := storage.PairAddress(a, b)
		refs = append(refs, pair.String())
	}
	for i := range g.Farms {
		refs = append(refs, fmt.Sprintf("farm:%d", i))
	}

	named := make([]*namedAddress, 0, len(refs))
	for _, ref := range refs {
		addr, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		bech, err := codec.AddressBech32(g.HRP, addr)
		if err != nil {
			return nil, err
		}
		named = append(named, &namedAddress{Ref: ref, Address: addr, Bech32: bech})
	}
	return named, nil
}
