// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test")

func TestNotifyAll(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r := &Recorder[int]{}
	failing := SubscriptionFunc[int]{
		AcceptF: func(context.Context, int) error {
			return errTest
		},
	}
	require.NoError(NotifyAll(ctx, 1, r))
	require.ErrorIs(NotifyAll(ctx, 2, r, failing), errTest)
	require.Equal([]int{1, 2}, r.Items())

	r.Reset()
	require.Empty(r.Items())
	require.NoError(CloseAll[int](r, failing))
}

func TestSubscriptionFuncFactory(t *testing.T) {
	require := require.New(t)
	var got []string
	f := SubscriptionFuncFactory[string]{
		AcceptF: func(_ context.Context, s string) error {
			got = append(got, s)
			return nil
		},
	}
	sub, err := f.New()
	require.NoError(err)
	require.NoError(sub.Accept(context.Background(), "a"))
	require.Equal([]string{"a"}, got)
}
