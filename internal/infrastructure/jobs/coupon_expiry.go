package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/pkg/logger"
)

const sweepBatchSize = 500

// CouponExpiryJob periodically deactivates coupons whose validity window
// has passed, so expired codes stop applying without waiting for a write
// to the coupon.
type CouponExpiryJob struct {
	repo     repositories.CouponRepository
	interval time.Duration
}

// NewCouponExpiryJob creates a coupon expiry job
func NewCouponExpiryJob(repo repositories.CouponRepository, interval time.Duration) *CouponExpiryJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CouponExpiryJob{repo: repo, interval: interval}
}

// Run sweeps on a ticker until the context is cancelled. It performs one
// sweep immediately on start.
func (j *CouponExpiryJob) Run(ctx context.Context) {
	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "coupon expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *CouponExpiryJob) sweep(ctx context.Context) {
	n, err := j.repo.DeactivateExpired(ctx, sweepBatchSize)
	if err != nil {
		logger.Error(ctx, "coupon expiry sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info(ctx, "deactivated expired coupons", zap.Int64("count", n))
	}
}
