// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/server"
	"github.com/ava-labs/dexfarm/vm"
)

const (
	metricsPath = "/metrics"
	servicePath = "/ext/" + consts.Name
)

// Service answers read-only queries over JSON-RPC, e.g.
// {"method": "dexfarm.query", "params": {"method": "balanceOf", ...}}.
type Service struct {
	vm *vm.VM
}

type QueryArgs struct {
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

type QueryReply struct {
	Height uint64   `json:"height"`
	Values []string `json:"values"`
}

func (s *Service) Query(r *http.Request, args *QueryArgs, reply *QueryReply) error {
	params, err := encodeParams(s.vm.Resolver(), args.Params)
	if err != nil {
		return err
	}
	reply.Height = s.vm.LastAccepted().Height
	reply.Values, err = runQuery(r.Context(), s.vm, args.Method, params)
	return err
}

type LastAcceptedReply struct {
	Height    uint64 `json:"height"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Service) LastAccepted(_ *http.Request, _ *struct{}, reply *LastAcceptedReply) error {
	blk := s.vm.LastAccepted()
	reply.Height = blk.Height
	reply.Timestamp = blk.Timestamp
	return nil
}

func newAPI(log logging.Logger, listener net.Listener, config server.Config, v *vm.VM) (server.Server, error) {
	s := server.New(log, listener, config)
	s.AddRoute(promhttp.HandlerFor(v.Gatherer(), promhttp.HandlerOpts{
		// the server gzips responses
		DisableCompression: true,
	}), metricsPath, http.MethodGet)
	handler, err := server.NewHandler(&Service{vm: v}, consts.Name)
	if err != nil {
		return nil, err
	}
	s.AddRoute(handler, servicePath, http.MethodPost)
	return s, nil
}

// serveAPI serves [config.Address] until [ctx] is done.
func serveAPI(ctx context.Context, log logging.Logger, config server.Config, v *vm.VM) error {
	listener, err := net.Listen("tcp", config.Address)
	if err != nil {
		return err
	}
	s, err := newAPI(log, listener, config, v)
	if err != nil {
		_ = listener.Close()
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Dispatch()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	err = s.Shutdown()
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}
