// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/dexfarm/server"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, url string, method string, params interface{}) rpcResponse {
	require := require.New(t)
	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(err)
	defer resp.Body.Close()

	var reply rpcResponse
	require.NoError(json.NewDecoder(resp.Body).Decode(&reply))
	return reply
}

func TestAPI(t *testing.T) {
	require := require.New(t)
	v := newTestVM(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	config := server.NewDefaultConfig()
	config.Address = listener.Addr().String()
	s, err := newAPI(logging.NoLog{}, listener, config, v)
	require.NoError(err)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Dispatch()
	}()
	base := "http://" + listener.Addr().String()

	reply := call(t, base+servicePath, "dexfarm.query", QueryArgs{
		Method: "balanceOf",
		Params: map[string]interface{}{"token": "token:AAA", "owner": "@alice"},
	})
	require.Nil(reply.Error)
	var query QueryReply
	require.NoError(json.Unmarshal(reply.Result, &query))
	require.Equal(uint64(0), query.Height)
	require.Equal([]string{"10000000000000000000000"}, query.Values)

	reply = call(t, base+servicePath, "dexfarm.query", QueryArgs{Method: "nope"})
	require.NotNil(reply.Error)
	require.Contains(reply.Error.Message, ErrUnknownMethod.Error())

	reply = call(t, base+servicePath, "dexfarm.lastAccepted", struct{}{})
	require.Nil(reply.Error)
	var last LastAcceptedReply
	require.NoError(json.Unmarshal(reply.Result, &last))
	require.Equal(LastAcceptedReply{}, last)

	resp, err := http.Get(base + metricsPath)
	require.NoError(err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Contains(string(b), "vm_blocks_accepted")

	require.NoError(s.Shutdown())
	require.ErrorIs(<-errCh, http.ErrServerClosed)
}
