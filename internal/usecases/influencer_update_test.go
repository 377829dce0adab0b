package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/internal/usecases"
)

func sp(s string) *string { return &s }

func testInfluencer() *entities.Influencer {
	return &entities.Influencer{
		ID:                 "inf_123",
		Name:               "Asha Rao",
		NameLower:          "asha rao",
		Email:              "asha@example.com",
		EmailLower:         "asha@example.com",
		Username:           "asharao",
		UsernameLower:      "asharao",
		Status:             entities.InfluencerStatusActive,
		VerificationStatus: entities.VerificationVerified,
		AuthUID:            "uid-asha",
		Version:            3,
		CreatedAt:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func testAccount() *repositories.IdentityUser {
	return &repositories.IdentityUser{UID: "uid-asha", Email: "asha@example.com", Disabled: false}
}

func requireAppError(t *testing.T, err error, status int, code string) *domainerrors.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestUpdateInfluencer_InvalidID(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	_, err := uc.UpdateInfluencer(context.Background(), "bad id!", &entities.InfluencerUpdateInput{Name: sp("New Name")})

	requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeInvalidInfluencerID)
	repo.AssertNotCalled(t, "GetByID")
}

func TestUpdateInfluencer_EmptyBodyAfterStripping(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{})

	requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeValidation)
	repo.AssertNotCalled(t, "GetByID")
}

func TestUpdateInfluencer_ValidationIsIdempotent(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	input := &entities.InfluencerUpdateInput{
		Email:  sp("not-an-email"),
		Status: sp("frozen"),
	}

	_, err1 := uc.UpdateInfluencer(context.Background(), "inf_123", input)
	_, err2 := uc.UpdateInfluencer(context.Background(), "inf_123", input)

	appErr1 := requireAppError(t, err1, http.StatusBadRequest, domainerrors.CodeValidation)
	appErr2 := requireAppError(t, err2, http.StatusBadRequest, domainerrors.CodeValidation)
	assert.Equal(t, appErr1.Details, appErr2.Details)
	assert.Len(t, appErr1.Details, 2)
}

func TestUpdateInfluencer_NotFound(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	repo.On("GetByID", mock.Anything, "inf_404").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_404", &entities.InfluencerUpdateInput{Name: sp("New Name")})

	requireAppError(t, err, http.StatusNotFound, domainerrors.CodeInfluencerNotFound)
}

func TestUpdateInfluencer_MissingAuthUID(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	current.AuthUID = ""
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Name: sp("New Name")})

	requireAppError(t, err, http.StatusInternalServerError, domainerrors.CodeMissingAuthUID)
	gateway.AssertNotCalled(t, "GetUser")
}

func TestUpdateInfluencer_AuthAccountMissing(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	repo.On("GetByID", mock.Anything, "inf_123").Return(testInfluencer(), nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(nil, domainerrors.ErrIdentityUserNotFound)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Name: sp("New Name")})

	requireAppError(t, err, http.StatusNotFound, domainerrors.CodeAuthUserNotFound)
	repo.AssertNotCalled(t, "ApplyUpdate")
}

func TestUpdateInfluencer_DuplicateEmailPrecedesMutation(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	repo.On("GetByID", mock.Anything, "inf_123").Return(testInfluencer(), nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)

	other := testInfluencer()
	other.ID = "inf_999"
	repo.On("FindOtherByEmail", mock.Anything, "already@taken.com", "inf_123").Return(other, nil)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Email: sp("already@taken.com")})

	requireAppError(t, err, http.StatusConflict, domainerrors.CodeDuplicateValues)
	gateway.AssertNotCalled(t, "UpdateUser")
	repo.AssertNotCalled(t, "ApplyUpdate")
}

func TestUpdateInfluencer_EmailInUseAtIdentityService(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	repo.On("GetByID", mock.Anything, "inf_123").Return(testInfluencer(), nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	repo.On("FindOtherByEmail", mock.Anything, "taken@other.com", "inf_123").Return(nil, domainerrors.ErrNotFound)
	gateway.On("GetUserByEmail", mock.Anything, "taken@other.com").
		Return(&repositories.IdentityUser{UID: "uid-other", Email: "taken@other.com"}, nil)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Email: sp("taken@other.com")})

	requireAppError(t, err, http.StatusConflict, domainerrors.CodeEmailInUse)
	gateway.AssertNotCalled(t, "UpdateUser")
	repo.AssertNotCalled(t, "ApplyUpdate")
}

func TestUpdateInfluencer_NoOpIdentitySkip(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	repo.On("ApplyUpdate", mock.Anything, mock.Anything, int64(3)).Return(nil)

	// Email and status match the stored record, so the identity service
	// must not be called at all.
	input := &entities.InfluencerUpdateInput{
		Email:  sp("asha@example.com"),
		Status: sp("active"),
		Name:   sp("Asha R."),
	}
	result, err := uc.UpdateInfluencer(context.Background(), "inf_123", input)

	require.NoError(t, err)
	gateway.AssertNotCalled(t, "UpdateUser")
	assert.Empty(t, result.AuthFieldsChanged)
	assert.Equal(t, "Influencer updated successfully", result.SuccessMessage())
}

func TestUpdateInfluencer_ProtectedFieldsNeverWritten(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)

	repo.On("ApplyUpdate", mock.Anything, mock.MatchedBy(func(inf *entities.Influencer) bool {
		return inf.ID == current.ID &&
			inf.AuthUID == current.AuthUID &&
			inf.CreatedAt.Equal(current.CreatedAt)
	}), int64(3)).Return(nil)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Name: sp("Asha Renamed")})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateInfluencer_StatusChangeDisablesAccount(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	fresh := testInfluencer()
	fresh.Status = entities.InfluencerStatusInactive
	fresh.Version = 4

	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil).Once()
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.MatchedBy(func(u repositories.IdentityUpdate) bool {
		return u.Email == nil && u.Disabled != nil && *u.Disabled
	})).Return(nil).Once()
	repo.On("ApplyUpdate", mock.Anything, mock.MatchedBy(func(inf *entities.Influencer) bool {
		return inf.Status == entities.InfluencerStatusInactive
	}), int64(3)).Return(nil)
	repo.On("GetByID", mock.Anything, "inf_123").Return(fresh, nil).Once()

	result, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Status: sp("inactive")})

	require.NoError(t, err)
	assert.Equal(t, []string{"status"}, result.AuthFieldsChanged)
	assert.Contains(t, result.SuccessMessage(), "Auth fields updated: status")
	assert.Equal(t, entities.InfluencerStatusInactive, result.Influencer.Status)
	gateway.AssertExpectations(t)
}

func TestUpdateInfluencer_StoreFailureCompensatesEmail(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	repo.On("FindOtherByEmail", mock.Anything, "fresh@example.com", "inf_123").Return(nil, domainerrors.ErrNotFound)
	gateway.On("GetUserByEmail", mock.Anything, "fresh@example.com").Return(nil, domainerrors.ErrIdentityUserNotFound)

	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.MatchedBy(func(u repositories.IdentityUpdate) bool {
		return u.Email != nil && *u.Email == "fresh@example.com"
	})).Return(nil).Once()

	repo.On("ApplyUpdate", mock.Anything, mock.Anything, int64(3)).Return(domainerrors.ErrStaleRecord)

	// Compensation must restore the identity email to its pre-request value
	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.MatchedBy(func(u repositories.IdentityUpdate) bool {
		return u.Email != nil && *u.Email == "asha@example.com"
	})).Return(nil).Once()

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Email: sp("fresh@example.com")})

	appErr := requireAppError(t, err, http.StatusInternalServerError, domainerrors.CodeStoreUpdateFailed)
	assert.Contains(t, appErr.Message, "rolled back")
	gateway.AssertExpectations(t)
}

func TestUpdateInfluencer_PartialIdentityFailureCompensatesAppliedAttributes(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	repo.On("FindOtherByEmail", mock.Anything, "fresh@example.com", "inf_123").Return(nil, domainerrors.ErrNotFound)
	gateway.On("GetUserByEmail", mock.Anything, "fresh@example.com").Return(nil, domainerrors.ErrIdentityUserNotFound)

	// Email lands, the disabled-flag call then fails
	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.MatchedBy(func(u repositories.IdentityUpdate) bool {
		return u.Email != nil && *u.Email == "fresh@example.com"
	})).Return(nil).Once()
	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.MatchedBy(func(u repositories.IdentityUpdate) bool {
		return u.Disabled != nil && *u.Disabled
	})).Return(errors.New("identity backend hiccup")).Once()

	// Only the email attribute was applied, so only it is rolled back
	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.MatchedBy(func(u repositories.IdentityUpdate) bool {
		return u.Email != nil && *u.Email == "asha@example.com"
	})).Return(nil).Once()

	input := &entities.InfluencerUpdateInput{
		Email:  sp("fresh@example.com"),
		Status: sp("inactive"),
	}
	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", input)

	requireAppError(t, err, http.StatusInternalServerError, domainerrors.CodeAuthUpdateFailed)
	repo.AssertNotCalled(t, "ApplyUpdate")
	gateway.AssertExpectations(t)
}

func TestUpdateInfluencer_IdentityEmailExistsMapsToEmailInUse(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	repo.On("FindOtherByEmail", mock.Anything, "fresh@example.com", "inf_123").Return(nil, domainerrors.ErrNotFound)
	gateway.On("GetUserByEmail", mock.Anything, "fresh@example.com").Return(nil, domainerrors.ErrIdentityUserNotFound)
	gateway.On("UpdateUser", mock.Anything, "uid-asha", mock.Anything).Return(domainerrors.ErrIdentityEmailExists).Once()

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Email: sp("fresh@example.com")})

	requireAppError(t, err, http.StatusConflict, domainerrors.CodeEmailInUse)
	repo.AssertNotCalled(t, "ApplyUpdate")
}

func TestUpdateInfluencer_StoreTimeoutMapsToDatabaseTimeout(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	current := testInfluencer()
	repo.On("GetByID", mock.Anything, "inf_123").Return(current, nil)
	gateway.On("GetUser", mock.Anything, "uid-asha").Return(testAccount(), nil)
	repo.On("ApplyUpdate", mock.Anything, mock.Anything, int64(3)).Return(context.DeadlineExceeded)

	_, err := uc.UpdateInfluencer(context.Background(), "inf_123", &entities.InfluencerUpdateInput{Name: sp("New Name")})

	requireAppError(t, err, http.StatusGatewayTimeout, domainerrors.CodeDatabaseTimeout)
}

func TestGetInfluencer_NotFound(t *testing.T) {
	repo := new(MockInfluencerRepository)
	gateway := new(MockIdentityGateway)
	uc := usecases.NewInfluencerUsecase(repo, gateway, nil)

	repo.On("GetByID", mock.Anything, "inf_404").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Get(context.Background(), "inf_404")

	requireAppError(t, err, http.StatusNotFound, domainerrors.CodeInfluencerNotFound)
}
