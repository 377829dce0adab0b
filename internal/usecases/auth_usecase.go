package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/pkg/crypto"
	"firmdesk.backend/pkg/jwt"
	"firmdesk.backend/pkg/logger"
)

// AuthUsecase handles operator authentication
type AuthUsecase struct {
	repo repositories.UserRepository
	jwt  *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(repo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{repo: repo, jwt: jwtService}
}

// Login verifies operator credentials and issues a token pair. Unknown
// emails and wrong passwords get the same answer.
func (uc *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := uc.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, classifyStoreError(err)
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		logger.Warn(ctx, "failed login attempt", zap.String("email", input.Email))
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	pair, err := uc.jwt.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair
func (uc *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := uc.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired refresh token")
	}

	user, err := uc.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, classifyStoreError(err)
	}

	pair, err := uc.jwt.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
