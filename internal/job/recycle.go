package job

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"salescrm/internal/service"
)

// RecycleSweeper periodically returns long-unfollowed customers to the
// pool, driven by the pool_recycle_days setting.
type RecycleSweeper struct {
	poolSvc  service.PoolService
	interval time.Duration
}

// NewRecycleSweeper builds new RecycleSweeper
func NewRecycleSweeper(poolSvc service.PoolService, interval time.Duration) *RecycleSweeper {
	return &RecycleSweeper{poolSvc: poolSvc, interval: interval}
}

// Run sweeps on every tick until the context is cancelled. A failed
// sweep is logged and retried on the next tick.
func (s *RecycleSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.Infof("pool recycle sweeper started, sweeping every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("pool recycle sweeper stopped")
			return
		case <-ticker.C:
			recycled, err := s.poolSvc.RecycleStale(ctx, time.Now())
			if err != nil {
				logrus.Errorf("pool recycle sweep failed - %v", err)
				continue
			}
			if recycled > 0 {
				logrus.Infof("recycled %d customers to the pool", recycled)
			}
		}
	}
}
