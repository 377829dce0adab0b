package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmdesk.backend/internal/config"
	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/jwt"
)

// fixedInfluencerRepo serves a single record, enough to route a PATCH
// through the full middleware chain.
type fixedInfluencerRepo struct {
	record *entities.Influencer
}

func (r *fixedInfluencerRepo) GetByID(ctx context.Context, id string) (*entities.Influencer, error) {
	if r.record == nil || r.record.ID != id {
		return nil, domainerrors.ErrNotFound
	}
	clone := *r.record
	return &clone, nil
}

func (r *fixedInfluencerRepo) FindOtherByEmail(ctx context.Context, email, excludeID string) (*entities.Influencer, error) {
	return nil, domainerrors.ErrNotFound
}

func (r *fixedInfluencerRepo) List(ctx context.Context, search string, limit, offset int) ([]*entities.Influencer, int64, error) {
	clone := *r.record
	return []*entities.Influencer{&clone}, 1, nil
}

func (r *fixedInfluencerRepo) ApplyUpdate(ctx context.Context, inf *entities.Influencer, expectedVersion int64) error {
	clone := *inf
	clone.Version = expectedVersion + 1
	r.record = &clone
	return nil
}

type recordingIdentity struct {
	account     repositories.IdentityUser
	updateCalls int
}

func (g *recordingIdentity) GetUser(ctx context.Context, uid string) (*repositories.IdentityUser, error) {
	if uid != g.account.UID {
		return nil, domainerrors.ErrIdentityUserNotFound
	}
	clone := g.account
	return &clone, nil
}

func (g *recordingIdentity) GetUserByEmail(ctx context.Context, email string) (*repositories.IdentityUser, error) {
	return nil, domainerrors.ErrIdentityUserNotFound
}

func (g *recordingIdentity) UpdateUser(ctx context.Context, uid string, update repositories.IdentityUpdate) error {
	g.updateCalls++
	if update.Disabled != nil {
		g.account.Disabled = *update.Disabled
	}
	if update.Email != nil {
		g.account.Email = *update.Email
	}
	return nil
}

func newRouterFixture() (*fixedInfluencerRepo, *recordingIdentity, *jwt.JWTService, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	repo := &fixedInfluencerRepo{record: &entities.Influencer{
		ID:      "inf_123",
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Status:  entities.InfluencerStatusActive,
		AuthUID: "uid-asha",
		Version: 1,
	}}
	identity := &recordingIdentity{account: repositories.IdentityUser{
		UID:   "uid-asha",
		Email: "asha@example.com",
	}}
	jwtService := jwt.NewJWTService("router-test-secret", 15*time.Minute, time.Hour)

	deps := &handlerDeps{
		influencer: usecases.NewInfluencerUsecase(repo, identity, nil),
		jwt:        jwtService,
	}
	router := setupRouter(&config.Config{Server: config.ServerConfig{Env: "test"}}, deps)
	return repo, identity, jwtService, router
}

func bearerFor(t *testing.T, jwtService *jwt.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "ops@firmdesk.test", role)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestRoutes_StaffCannotPatchInfluencer(t *testing.T) {
	repo, identity, jwtService, router := newRouterFixture()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/influencers?id=inf_123",
		bytes.NewBufferString(`{"status":"inactive"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, jwtService, string(entities.UserRoleStaff)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	// Neither system of record was touched
	assert.Equal(t, 0, identity.updateCalls)
	assert.False(t, identity.account.Disabled)
	assert.Equal(t, entities.InfluencerStatusActive, repo.record.Status)
}

func TestRoutes_AdminCanPatchInfluencer(t *testing.T) {
	repo, identity, jwtService, router := newRouterFixture()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/influencers?id=inf_123",
		bytes.NewBufferString(`{"status":"inactive"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, jwtService, string(entities.UserRoleAdmin)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, identity.account.Disabled)
	assert.Equal(t, entities.InfluencerStatusInactive, repo.record.Status)
}

func TestRoutes_StaffCanReadInfluencers(t *testing.T) {
	_, _, jwtService, router := newRouterFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/influencers?id=inf_123", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtService, string(entities.UserRoleStaff)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
