package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/domain/repositories"
)

type MockInfluencerRepository struct {
	mock.Mock
}

func (m *MockInfluencerRepository) GetByID(ctx context.Context, id string) (*entities.Influencer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Influencer), args.Error(1)
}

func (m *MockInfluencerRepository) FindOtherByEmail(ctx context.Context, email, excludeID string) (*entities.Influencer, error) {
	args := m.Called(ctx, email, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Influencer), args.Error(1)
}

func (m *MockInfluencerRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.Influencer, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Influencer), args.Get(1).(int64), args.Error(2)
}

func (m *MockInfluencerRepository) ApplyUpdate(ctx context.Context, inf *entities.Influencer, expectedVersion int64) error {
	args := m.Called(ctx, inf, expectedVersion)
	return args.Error(0)
}

type MockIdentityGateway struct {
	mock.Mock
}

func (m *MockIdentityGateway) GetUser(ctx context.Context, uid string) (*repositories.IdentityUser, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.IdentityUser), args.Error(1)
}

func (m *MockIdentityGateway) GetUserByEmail(ctx context.Context, email string) (*repositories.IdentityUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.IdentityUser), args.Error(1)
}

func (m *MockIdentityGateway) UpdateUser(ctx context.Context, uid string, update repositories.IdentityUpdate) error {
	args := m.Called(ctx, uid, update)
	return args.Error(0)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *entities.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *MockClientRepository) GetByEmail(ctx context.Context, email string) (*entities.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *entities.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ClientStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockClientRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.Client, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Task, int64, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Task), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) Create(ctx context.Context, charge *entities.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Charge), args.Error(1)
}

func (m *MockChargeRepository) Update(ctx context.Context, charge *entities.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Charge, int64, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Charge), args.Get(1).(int64), args.Error(2)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Update(ctx context.Context, coupon *entities.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Coupon, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Coupon), args.Error(1)
}

func (m *MockCouponRepository) DeactivateExpired(ctx context.Context, limit int) (int64, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}
