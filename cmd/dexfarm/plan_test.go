// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/dexfarm/config"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/genesis"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/vm"
)

func newTestVM(t *testing.T) *vm.VM {
	require := require.New(t)
	genesisBytes, err := os.ReadFile("testdata/genesis.yaml")
	require.NoError(err)
	cfg, err := config.New(nil)
	require.NoError(err)
	v, err := vm.New(context.Background(), logging.NoLog{}, cfg, genesisBytes)
	require.NoError(err)
	t.Cleanup(func() {
		require.NoError(v.Shutdown(context.Background()))
	})
	return v
}

func TestRunPlan(t *testing.T) {
	require := require.New(t)
	b, err := os.ReadFile("testdata/plan.yaml")
	require.NoError(err)
	plan, err := unmarshalPlan(b)
	require.NoError(err)

	v := newTestVM(t)
	out := &bytes.Buffer{}
	require.NoError(newRunner(logging.NoLog{}, v, out).Run(context.Background(), plan))

	var ids []int
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var resp struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
			Error  string `json:"error"`
		}
		require.NoError(json.Unmarshal(scanner.Bytes(), &resp))
		require.Equal(plan.Steps[resp.ID].Method, resp.Method)
		ids = append(ids, resp.ID)
	}
	require.Len(ids, len(plan.Steps))
	for i, id := range ids {
		require.Equal(i, id)
	}
	require.Equal(uint64(20), v.LastAccepted().Height)
}

func TestRunPlanFailsOnUnmetRequirement(t *testing.T) {
	require := require.New(t)
	plan, err := unmarshalPlan([]byte(`
steps:
  - endpoint: execute
    caller: "@bob"
    method: transfer
    params: {token: token:AAA, to: "@alice", value: "1000000e18"}
    require: {status: success}
`))
	require.NoError(err)

	out := &bytes.Buffer{}
	err = newRunner(logging.NoLog{}, newTestVM(t), out).Run(context.Background(), plan)
	require.ErrorIs(err, ErrAssertionFailed)
	require.Contains(out.String(), `"error"`)
}

func TestUnmarshalPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		plan string
		err  error
	}{
		{
			name: "no steps",
			plan: "name: empty",
			err:  ErrInvalidPlan,
		},
		{
			name: "unknown field",
			plan: "stepz: []",
			err:  ErrInvalidPlan,
		},
		{
			name: "unknown endpoint",
			plan: "steps: [{endpoint: key, method: create}]",
			err:  ErrInvalidEndpoint,
		},
		{
			name: "execute without caller",
			plan: "steps: [{endpoint: execute, method: transfer}]",
			err:  ErrInvalidStep,
		},
		{
			name: "status on readonly",
			plan: "steps: [{endpoint: readonly, method: balanceOf, require: {status: success}}]",
			err:  ErrInvalidStep,
		},
		{
			name: "bad status",
			plan: `steps: [{endpoint: execute, caller: "@alice", method: sync, require: {status: maybe}}]`,
			err:  ErrInvalidStep,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unmarshalPlan([]byte(tt.plan))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestExpandAmount(t *testing.T) {
	tests := map[string]string{
		"1e18":     "1000000000000000000",
		"25e3":     "25000",
		"7":        "7",
		"1.5e18":   "1.5e18",
		"token:AB": "token:AB",
		"1e100":    "1e100",
	}
	for in, want := range tests {
		require.Equal(t, want, expandAmount(in), in)
	}
}

func TestEncodeParams(t *testing.T) {
	require := require.New(t)
	r := genesis.NewResolver(consts.HRP)
	require.NoError(r.AddAccount("alice", genesis.AccountAddress("alice")))

	b, err := encodeParams(r, map[string]interface{}{
		"to":    "@alice",
		"value": "2e3",
		"pid":   1,
		"path":  []interface{}{"token:AAA", "token:BBB"},
		"nested": map[interface{}]interface{}{
			"farm": "farm:0",
		},
	})
	require.NoError(err)

	var got map[string]interface{}
	require.NoError(json.Unmarshal(b, &got))
	require.Equal(genesis.AccountAddress("alice").String(), got["to"])
	require.Equal("2000", got["value"])
	require.Equal(float64(1), got["pid"])
	require.Equal([]interface{}{
		storage.TokenAddress("AAA").String(),
		storage.TokenAddress("BBB").String(),
	}, got["path"])
	require.Equal(map[string]interface{}{"farm": storage.FarmAddress(0).String()}, got["nested"])

	_, err = encodeParams(r, map[string]interface{}{"to": "@bob"})
	require.ErrorIs(err, genesis.ErrUnknownAccount)
	_, err = encodeParams(r, map[string]interface{}{"value": 1e18})
	require.ErrorIs(err, ErrUnsupportedValue)
}

func TestValidate(t *testing.T) {
	values := &Result{Values: []string{"10", "20"}}
	tests := []struct {
		name    string
		resp    *Response
		require *Require
		err     error
	}{
		{name: "none", resp: &Response{}},
		{
			name:    "wanted success",
			resp:    &Response{Error: "boom"},
			require: &Require{Status: StatusSuccess},
			err:     ErrAssertionFailed,
		},
		{
			name:    "wanted failure",
			resp:    &Response{Error: "insufficient liquidity"},
			require: &Require{Status: StatusFailure, Error: "liquidity"},
		},
		{
			name:    "wrong error",
			resp:    &Response{Error: "locked"},
			require: &Require{Status: StatusFailure, Error: "liquidity"},
			err:     ErrAssertionFailed,
		},
		{
			name:    "equal",
			resp:    &Response{Result: values},
			require: &Require{Result: &ResultAssertion{Index: 1, Operator: "==", Value: "20"}},
		},
		{
			name:    "greater",
			resp:    &Response{Result: values},
			require: &Require{Result: &ResultAssertion{Operator: ">", Value: "10"}},
			err:     ErrAssertionFailed,
		},
		{
			name:    "scaled",
			resp:    &Response{Result: values},
			require: &Require{Result: &ResultAssertion{Operator: "<", Value: "1e2"}},
		},
		{
			name:    "index out of range",
			resp:    &Response{Result: values},
			require: &Require{Result: &ResultAssertion{Index: 2, Operator: "==", Value: "0"}},
			err:     ErrMissingResult,
		},
		{
			name:    "bad operator",
			resp:    &Response{Result: values},
			require: &Require{Result: &ResultAssertion{Operator: "~", Value: "0"}},
			err:     ErrInvalidOperator,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.resp.validate(tt.require), tt.err)
		})
	}
}

func TestCompare(t *testing.T) {
	ten, twenty := uint256.NewInt(10), uint256.NewInt(20)
	tests := []struct {
		op   Operator
		want bool
	}{
		{op: NumericGt, want: false},
		{op: NumericLt, want: true},
		{op: NumericGe, want: false},
		{op: NumericLe, want: true},
		{op: NumericEq, want: false},
		{op: NumericNe, want: true},
	}
	for _, tt := range tests {
		got, err := compare(ten, tt.op, twenty)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, string(tt.op))
	}
}

func TestGenesisAddresses(t *testing.T) {
	require := require.New(t)
	b, err := os.ReadFile("testdata/genesis.yaml")
	require.NoError(err)
	g, err := genesis.Load(b)
	require.NoError(err)

	named, err := genesisAddresses(g)
	require.NoError(err)
	require.Len(named, 2+3+1+1)
	require.Equal("@alice", named[0].Ref)
	require.Equal(genesis.AccountAddress("alice"), named[0].Address)
	require.Equal(storage.TokenAddress("CAKE"), named[2].Address)
	require.Equal(storage.PairAddress(storage.TokenAddress("AAA"), storage.TokenAddress("BBB")), named[5].Address)
	require.Equal(storage.FarmAddress(0), named[6].Address)
}
