// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/dexfarm/actions"
	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/vm"
)

// runner replays a [Plan] against a [vm.VM], writing one JSON response per
// step to [out].
type runner struct {
	log logging.Logger
	vm  *vm.VM
	out io.Writer

	// execute steps waiting for their block
	block   *chain.Block
	calls   []*vm.Call
	pending []*pendingStep
}

type pendingStep struct {
	step *Step
	resp *Response
}

func newRunner(log logging.Logger, v *vm.VM, out io.Writer) *runner {
	return &runner{log: log, vm: v, out: out}
}

func (r *runner) Run(ctx context.Context, plan *Plan) error {
	r.log.Info("running plan",
		zap.String("name", plan.Name),
		zap.String("description", plan.Description),
		zap.Int("steps", len(plan.Steps)),
	)
	for i, step := range plan.Steps {
		r.log.Debug("step",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("endpoint", string(step.Endpoint)),
			zap.String("method", step.Method),
			zap.Uint64("height", step.Height),
		)
		var err error
		switch step.Endpoint {
		case EndpointExecute:
			err = r.execute(ctx, i, step)
		case EndpointReadOnly:
			if err := r.flush(ctx); err != nil {
				return err
			}
			err = r.readOnly(ctx, i, step)
		default:
			err = fmt.Errorf("%w: %q", ErrInvalidEndpoint, step.Endpoint)
		}
		if err != nil {
			return err
		}
	}
	return r.flush(ctx)
}

func (r *runner) execute(ctx context.Context, id int, step *Step) error {
	blk := r.nextBlock(step)
	if r.block != nil && r.block.Height != blk.Height {
		if err := r.flush(ctx); err != nil {
			return err
		}
		blk = r.nextBlock(step)
	}
	if r.block == nil {
		r.block = &blk
	}

	resolver := r.vm.Resolver()
	caller, err := resolver.Resolve(step.Caller)
	if err != nil {
		return fmt.Errorf("step %d caller: %w", id, err)
	}
	args, err := encodeParams(resolver, step.Params)
	if err != nil {
		return fmt.Errorf("step %d params: %w", id, err)
	}
	action, err := actions.Decode(step.Method, args)
	if err != nil {
		return fmt.Errorf("step %d: %w", id, err)
	}
	r.calls = append(r.calls, &vm.Call{Actor: caller, Action: action})
	r.pending = append(r.pending, &pendingStep{step: step, resp: newResponse(id, step)})
	return nil
}

// nextBlock returns the block [step] executes in. A step without a height
// joins the open block, or opens the one after the last accepted.
func (r *runner) nextBlock(step *Step) chain.Block {
	if r.block != nil && (step.Height == 0 || step.Height == r.block.Height) {
		return *r.block
	}
	last := r.vm.LastAccepted()
	blk := chain.Block{Height: step.Height, Timestamp: step.Timestamp}
	if blk.Height == 0 {
		blk.Height = last.Height + 1
	}
	if blk.Timestamp == 0 {
		blk.Timestamp = last.Timestamp
	}
	return blk
}

// flush executes the open block and reports each of its steps.
func (r *runner) flush(ctx context.Context) error {
	if r.block == nil {
		return nil
	}
	blk, calls, pending := *r.block, r.calls, r.pending
	r.block, r.calls, r.pending = nil, nil, nil

	results, err := r.vm.ExecuteBlock(ctx, blk, calls)
	if err != nil {
		return err
	}
	for i, res := range results {
		p := pending[i]
		p.resp.Result.Height = blk.Height
		if res.Err != nil {
			p.resp.setError(res.Err)
		} else {
			p.resp.Result.Output = res.Output
			p.resp.Result.Events = res.Events
		}
		if err := r.report(p.resp, p.step.Require); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) readOnly(ctx context.Context, id int, step *Step) error {
	resp := newResponse(id, step)
	resp.Result.Height = r.vm.LastAccepted().Height
	args, err := encodeParams(r.vm.Resolver(), step.Params)
	if err != nil {
		return fmt.Errorf("step %d params: %w", id, err)
	}
	values, err := runQuery(ctx, r.vm, step.Method, args)
	if err != nil {
		resp.setError(err)
	} else {
		resp.Result.Values = values
	}
	return r.report(resp, step.Require)
}

func (r *runner) report(resp *Response, require *Require) error {
	if err := resp.Print(r.out); err != nil {
		return err
	}
	if err := resp.validate(require); err != nil {
		r.log.Error("requirement not met", zap.Int("step", resp.ID), zap.Error(err))
		return err
	}
	return nil
}
