package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/infrastructure/jobs"
)

type stubCouponRepo struct {
	sweeps atomic.Int64
	err    error
}

func (s *stubCouponRepo) Create(ctx context.Context, coupon *entities.Coupon) error { return nil }
func (s *stubCouponRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	return nil, nil
}
func (s *stubCouponRepo) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	return nil, nil
}
func (s *stubCouponRepo) Update(ctx context.Context, coupon *entities.Coupon) error { return nil }
func (s *stubCouponRepo) List(ctx context.Context, activeOnly bool) ([]*entities.Coupon, error) {
	return nil, nil
}

func (s *stubCouponRepo) DeactivateExpired(ctx context.Context, limit int) (int64, error) {
	s.sweeps.Add(1)
	return 0, s.err
}

func TestCouponExpiryJob_SweepsOnStartAndOnTicks(t *testing.T) {
	repo := &stubCouponRepo{}
	job := jobs.NewCouponExpiryJob(repo, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()
	job.Run(ctx)

	// One immediate sweep plus at least a couple of ticks
	assert.GreaterOrEqual(t, repo.sweeps.Load(), int64(3))
}

func TestCouponExpiryJob_KeepsRunningAfterSweepError(t *testing.T) {
	repo := &stubCouponRepo{err: errors.New("db offline")}
	job := jobs.NewCouponExpiryJob(repo, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()
	job.Run(ctx)

	assert.GreaterOrEqual(t, repo.sweeps.Load(), int64(2))
}
