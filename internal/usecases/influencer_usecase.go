package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/pkg/logger"
	"firmdesk.backend/pkg/redis"
)

// InfluencerUsecase handles influencer profile business logic, including
// the dual-system update workflow against the identity service and the
// profile store.
type InfluencerUsecase struct {
	repo     repositories.InfluencerRepository
	identity repositories.IdentityGateway
	cache    *redis.ProfileCache
	rules    *influencerRules
}

// NewInfluencerUsecase creates a new influencer usecase. The cache is
// optional; pass nil to read straight from the store.
func NewInfluencerUsecase(
	repo repositories.InfluencerRepository,
	identity repositories.IdentityGateway,
	cache *redis.ProfileCache,
) *InfluencerUsecase {
	return &InfluencerUsecase{
		repo:     repo,
		identity: identity,
		cache:    cache,
		rules:    newInfluencerRules(),
	}
}

// Get returns an influencer profile, read-through the cache
func (uc *InfluencerUsecase) Get(ctx context.Context, id string) (*entities.Influencer, error) {
	if !uc.rules.idPattern.MatchString(id) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInfluencerID, "invalid influencer id")
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			logger.Warn(ctx, "profile cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	inf, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeInfluencerNotFound, "influencer not found")
		}
		return nil, classifyStoreError(err)
	}

	if uc.cache != nil {
		if err := uc.cache.Put(ctx, inf); err != nil {
			logger.Warn(ctx, "profile cache write failed", zap.Error(err))
		}
	}
	return inf, nil
}

// List lists influencer profiles with optional search
func (uc *InfluencerUsecase) List(ctx context.Context, search string, limit, offset int) ([]*entities.Influencer, int64, error) {
	out, total, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, classifyStoreError(err)
	}
	return out, total, nil
}
