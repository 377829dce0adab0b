package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/repositories"
)

func TestCouponRepo_CreateAndGetByCode(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewCouponRepository(db)

	coupon := &entities.Coupon{
		Code:       "welcome10",
		Kind:       entities.CouponPercent,
		Value:      10,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
		Active:     true,
	}
	require.NoError(t, repo.Create(context.Background(), coupon))

	// Codes are normalized to uppercase and matched case-insensitively
	got, err := repo.GetByCode(context.Background(), "Welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", got.Code)

	err = repo.Create(context.Background(), &entities.Coupon{
		Code:       "WELCOME10",
		Kind:       entities.CouponFixed,
		Value:      50,
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestCouponRepo_DeactivateExpired(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewCouponRepository(db)

	expired := &entities.Coupon{
		Code:       "OLD",
		Kind:       entities.CouponFixed,
		Value:      100,
		ValidFrom:  time.Now().Add(-48 * time.Hour),
		ValidUntil: time.Now().Add(-24 * time.Hour),
		Active:     true,
	}
	live := &entities.Coupon{
		Code:       "LIVE",
		Kind:       entities.CouponFixed,
		Value:      100,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
		Active:     true,
	}
	require.NoError(t, repo.Create(context.Background(), expired))
	require.NoError(t, repo.Create(context.Background(), live))

	n, err := repo.DeactivateExpired(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	gotExpired, err := repo.GetByCode(context.Background(), "OLD")
	require.NoError(t, err)
	assert.False(t, gotExpired.Active)

	gotLive, err := repo.GetByCode(context.Background(), "LIVE")
	require.NoError(t, err)
	assert.True(t, gotLive.Active)

	// A second sweep finds nothing left to do
	n, err = repo.DeactivateExpired(context.Background(), 100)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCouponRepo_ListActiveOnly(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewCouponRepository(db)

	require.NoError(t, repo.Create(context.Background(), &entities.Coupon{
		Code: "ON", Kind: entities.CouponFixed, Value: 10,
		ValidFrom: time.Now(), ValidUntil: time.Now().Add(time.Hour), Active: true,
	}))
	require.NoError(t, repo.Create(context.Background(), &entities.Coupon{
		Code: "OFF", Kind: entities.CouponFixed, Value: 10,
		ValidFrom: time.Now(), ValidUntil: time.Now().Add(time.Hour), Active: false,
	}))

	all, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "ON", active[0].Code)
}
