package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) SweepOverdue(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestSweeper_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := &countingSweeper{err: errors.New("boom")}
	s := NewSweeper(svc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()

	require.Eventually(t, func() bool { return svc.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestSweeper_Disabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := &countingSweeper{}
	s := NewSweeper(svc, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx, 0))
	require.Zero(t, svc.calls.Load())
}
