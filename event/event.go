// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var (
	_ Subscription[struct{}]        = (*SubscriptionFunc[struct{}])(nil)
	_ Subscription[struct{}]        = (*Recorder[struct{}])(nil)
	_ SubscriptionFactory[struct{}] = (*SubscriptionFuncFactory[struct{}])(nil)
)

// SubscriptionFactory returns an instance of a concrete Subscription
type SubscriptionFactory[T any] interface {
	New() (Subscription[T], error)
}

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFuncFactory[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFuncFactory[T]) New() (Subscription[T], error) {
	return SubscriptionFunc[T](s), nil
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// Recorder keeps every accepted item in arrival order.
type Recorder[T any] struct {
	l     sync.Mutex
	items []T
}

func (r *Recorder[T]) Accept(_ context.Context, t T) error {
	r.l.Lock()
	defer r.l.Unlock()

	r.items = append(r.items, t)
	return nil
}

func (*Recorder[_]) Close() error {
	return nil
}

// Items returns a copy of everything recorded so far.
func (r *Recorder[T]) Items() []T {
	r.l.Lock()
	defer r.l.Unlock()

	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder[T]) Reset() {
	r.l.Lock()
	defer r.l.Unlock()

	r.items = nil
}

// NotifyAll delivers [e] to every subscriber, joining their errors.
func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every subscriber, joining their errors.
func CloseAll[T any](subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
