package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

var (
	_ identity.UserRepository    = (*MockUserRepository)(nil)
	_ partner.SupplierRepository = (*MockSupplierRepository)(nil)
)

func newAuthService(userRepo *MockUserRepository, supplierRepo *MockSupplierRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
	return NewAuthService(userRepo, supplierRepo, jwtService, zap.NewNop())
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registers a client account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		supplierRepo := new(MockSupplierRepository)
		service := newAuthService(userRepo, supplierRepo)

		userRepo.On("ExistsByEmail", mock.Anything, "buyer@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(context.Background(), RegisterRequest{
			Email:     "buyer@example.com",
			Password:  "correct horse",
			FirstName: "Ann",
			LastName:  "Smith",
		})

		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", resp.Email)
		assert.Equal(t, "client", resp.Role)
		supplierRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("supplier registration also creates the shop", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		supplierRepo := new(MockSupplierRepository)
		service := newAuthService(userRepo, supplierRepo)

		userRepo.On("ExistsByEmail", mock.Anything, "shop@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
		supplierRepo.On("Save", mock.Anything, mock.MatchedBy(func(s *partner.Supplier) bool {
			return s.Name == "Svyaznoy" && s.AcceptingOrders
		})).Return(nil)

		resp, err := service.Register(context.Background(), RegisterRequest{
			Email:       "shop@example.com",
			Password:    "correct horse",
			Role:        "supplier",
			CompanyName: "Svyaznoy",
		})

		require.NoError(t, err)
		assert.Equal(t, "supplier", resp.Role)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		supplierRepo := new(MockSupplierRepository)
		service := newAuthService(userRepo, supplierRepo)

		userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Email:    "taken@example.com",
			Password: "correct horse",
		})

		require.Error(t, err)
		assert.Equal(t, "ALREADY_EXISTS", domainCode(t, err))
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		supplierRepo := new(MockSupplierRepository)
		service := newAuthService(userRepo, supplierRepo)

		userRepo.On("ExistsByEmail", mock.Anything, "buyer@example.com").Return(false, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Email:    "buyer@example.com",
			Password: "short",
		})

		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
	})
}

func TestAuthService_Login(t *testing.T) {
	newActiveUser := func(t *testing.T) *identity.User {
		t.Helper()
		user, err := identity.NewUser("buyer@example.com", "correct horse", identity.UserRoleClient)
		require.NoError(t, err)
		user.ClearDomainEvents()
		return user
	}

	t.Run("returns a token pair for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthService(userRepo, new(MockSupplierRepository))
		user := newActiveUser(t)

		userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

		resp, err := service.Login(context.Background(), LoginRequest{
			Email:    "buyer@example.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthService(userRepo, new(MockSupplierRepository))

		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever!",
		})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthService(userRepo, new(MockSupplierRepository))

		userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(newActiveUser(t), nil)

		_, err := service.Login(context.Background(), LoginRequest{
			Email:    "buyer@example.com",
			Password: "wrong horse",
		})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
	})

	t.Run("rejects a deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthService(userRepo, new(MockSupplierRepository))
		user := newActiveUser(t)
		user.Deactivate()

		userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{
			Email:    "buyer@example.com",
			Password: "correct horse",
		})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("issues a new pair for a valid refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthService(userRepo, new(MockSupplierRepository))

		user, err := identity.NewUser("buyer@example.com", "correct horse", identity.UserRoleClient)
		require.NoError(t, err)

		userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		login, err := service.Login(context.Background(), LoginRequest{
			Email:    "buyer@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		refreshed, err := service.Refresh(context.Background(), RefreshRequest{
			RefreshToken: login.RefreshToken,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), new(MockSupplierRepository))

		_, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: "garbage"})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
	})
}
