package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type overdueSweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

// Sweeper periodically marks past-due loans as overdue.
type Sweeper struct {
	svc overdueSweeper
	log *zap.Logger
}

func NewSweeper(svc overdueSweeper, log *zap.Logger) *Sweeper {
	return &Sweeper{svc: svc, log: log.Named("sweeper")}
}

// Run sweeps once per interval until ctx is done. A non-positive interval disables it.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		s.log.Info("overdue sweep disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.svc.SweepOverdue(ctx); err != nil {
				s.log.Error("SweepOverdue", zap.Error(err))
			}
		}
	}
}
