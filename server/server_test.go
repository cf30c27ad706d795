// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

type EchoArgs struct {
	Message string `json:"message"`
}

type EchoReply struct {
	Message string `json:"message"`
}

type echoService struct{}

func (*echoService) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	reply.Message = args.Message
	return nil
}

func newTestServer(t *testing.T) (Server, string, chan error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New(logging.NoLog{}, listener, NewDefaultConfig())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Dispatch()
	}()
	return s, "http://" + listener.Addr().String(), errCh
}

func TestServerRoutes(t *testing.T) {
	require := require.New(t)
	s, base, errCh := newTestServer(t)

	s.AddRoute(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}), "/ping", http.MethodGet)

	resp, err := http.Get(base + "/ping")
	require.NoError(err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal("pong", string(b))

	resp, err = http.Post(base+"/ping", "text/plain", nil)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(base + "/missing")
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusNotFound, resp.StatusCode)

	require.NoError(s.Shutdown())
	require.ErrorIs(<-errCh, http.ErrServerClosed)
}

func TestHandler(t *testing.T) {
	require := require.New(t)
	s, base, errCh := newTestServer(t)

	handler, err := NewHandler(&echoService{}, "test")
	require.NoError(err)
	s.AddRoute(handler, "/rpc", http.MethodPost)

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "test.echo",
		"params":  EchoArgs{Message: "hello"},
	})
	require.NoError(err)
	resp, err := http.Post(base+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(err)
	var reply struct {
		Result EchoReply `json:"result"`
	}
	require.NoError(json.NewDecoder(resp.Body).Decode(&reply))
	require.NoError(resp.Body.Close())
	require.Equal("hello", reply.Result.Message)

	require.NoError(s.Shutdown())
	require.ErrorIs(<-errCh, http.ErrServerClosed)
}
