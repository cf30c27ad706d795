// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
)

// Plan is a scripted sequence of calls and queries.
type Plan struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Steps       []*Step `json:"steps" yaml:"steps"`
}

type Step struct {
	Description string `json:"description" yaml:"description"`
	// The endpoint to call. (required)
	Endpoint Endpoint `json:"endpoint" yaml:"endpoint"`
	// Consecutive execute steps at the same height share a block. Zero means
	// a new block after the last one.
	Height    uint64 `json:"height" yaml:"height"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	// The reference of the caller of an execute step.
	Caller string `json:"caller" yaml:"caller"`
	// An action name for execute, a query name for readonly. (required)
	Method string `json:"method" yaml:"method"`
	// Named arguments. Strings that are references are resolved to
	// addresses and amounts may be written as "<digits>e<decimals>".
	Params map[string]interface{} `json:"params" yaml:"params"`
	// Define required assertions against this step.
	Require *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Endpoint string

const (
	// Submit an action as part of a block.
	EndpointExecute Endpoint = "execute"
	// Query accepted state.
	EndpointReadOnly Endpoint = "readonly"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

type Require struct {
	// Expected outcome of an execute step.
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
	// Substring of the expected error.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Assertion against a value returned by a readonly step.
	Result *ResultAssertion `json:"result,omitempty" yaml:"result,omitempty"`
}

type ResultAssertion struct {
	// Index into the returned values.
	Index int `json:"index" yaml:"index"`
	// The operator to use for the assertion.
	Operator string `json:"operator" yaml:"operator"`
	// The value to compare against, in the same notation as params.
	Value string `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

// unmarshalPlan reads a YAML or JSON plan.
func unmarshalPlan(b []byte) (*Plan, error) {
	p := &Plan{}
	if err := yaml.UnmarshalStrict(b, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		if err := verifyStep(step); err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return p, nil
}

func verifyStep(step *Step) error {
	if len(step.Method) == 0 {
		return fmt.Errorf("%w: no method", ErrInvalidStep)
	}
	switch step.Endpoint {
	case EndpointExecute:
		if len(step.Caller) == 0 {
			return fmt.Errorf("%w: no caller", ErrInvalidStep)
		}
		if step.Require != nil && step.Require.Result != nil {
			return fmt.Errorf("%w: result assertions need a readonly step", ErrInvalidStep)
		}
	case EndpointReadOnly:
		if step.Require != nil && (len(step.Require.Status) > 0 || len(step.Require.Error) > 0) {
			return fmt.Errorf("%w: status assertions need an execute step", ErrInvalidStep)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, step.Endpoint)
	}
	if step.Require != nil {
		switch step.Require.Status {
		case "", StatusSuccess, StatusFailure:
		default:
			return fmt.Errorf("%w: status %q", ErrInvalidStep, step.Require.Status)
		}
	}
	return nil
}

func newResponse(id int, step *Step) *Response {
	return &Response{
		ID:          id,
		Description: step.Description,
		Method:      step.Method,
		Result:      &Result{},
	}
}

type Response struct {
	// The index of the step that generated this response.
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Method      string `json:"method"`
	// The result of the step.
	Result *Result `json:"result,omitempty"`
	// The error message if available.
	Error string `json:"error,omitempty"`
}

type Result struct {
	Height uint64 `json:"height,omitempty"`
	// The output of an execute step.
	Output codec.Typed          `json:"output,omitempty"`
	Events []*chain.EventRecord `json:"events,omitempty"`
	// The values returned by a readonly step.
	Values []string `json:"values,omitempty"`
}

func (r *Response) Print(w io.Writer) error {
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

func (r *Response) setError(err error) {
	r.Error = err.Error()
}

// validate checks [require] against the response of its step.
func (r *Response) validate(require *Require) error {
	if require == nil {
		return nil
	}
	if len(require.Status) > 0 {
		failed := len(r.Error) > 0
		if failed != (require.Status == StatusFailure) {
			return fmt.Errorf("%w: step %d wanted %s, error %q", ErrAssertionFailed, r.ID, require.Status, r.Error)
		}
	}
	if len(require.Error) > 0 && !strings.Contains(r.Error, require.Error) {
		return fmt.Errorf("%w: step %d wanted error containing %q, got %q", ErrAssertionFailed, r.ID, require.Error, r.Error)
	}
	if require.Result == nil {
		return nil
	}
	if len(r.Error) > 0 {
		return fmt.Errorf("%w: step %d failed: %s", ErrAssertionFailed, r.ID, r.Error)
	}
	a := require.Result
	if a.Index < 0 || a.Index >= len(r.Result.Values) {
		return fmt.Errorf("%w: step %d has %d values, wanted index %d", ErrMissingResult, r.ID, len(r.Result.Values), a.Index)
	}
	actual, err := uint256.FromDecimal(r.Result.Values[a.Index])
	if err != nil {
		return err
	}
	expected, err := parseAmount(a.Value)
	if err != nil {
		return err
	}
	ok, err := compare(actual, Operator(a.Operator), expected)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: step %d: %s %s %s", ErrAssertionFailed, r.ID, actual.Dec(), a.Operator, expected.Dec())
	}
	return nil
}

func compare(actual *uint256.Int, op Operator, value *uint256.Int) (bool, error) {
	switch op {
	case NumericGt:
		return actual.Gt(value), nil
	case NumericLt:
		return actual.Lt(value), nil
	case NumericGe:
		return !actual.Lt(value), nil
	case NumericLe:
		return !actual.Gt(value), nil
	case NumericEq:
		return actual.Eq(value), nil
	case NumericNe:
		return !actual.Eq(value), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
}
