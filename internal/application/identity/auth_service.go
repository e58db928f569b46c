package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo       identity.UserRepository
	supplierRepo   partner.SupplierRepository
	jwtService     *auth.JWTService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	supplierRepo partner.SupplierRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:     userRepo,
		supplierRepo: supplierRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a new user account. Accounts with the supplier role
// additionally get a supplier record named after the company.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	role := identity.UserRole(req.Role)
	if req.Role == "" {
		role = identity.UserRoleClient
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email is already registered")
	}

	user, err := identity.NewUser(req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	user.SetName(req.FirstName, req.LastName)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if user.IsSupplier() {
		supplier, err := partner.NewSupplier(user.ID, req.CompanyName)
		if err != nil {
			return nil, err
		}
		if err := s.supplierRepo.Save(ctx, supplier); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, supplier.GetDomainEvents())
		supplier.ClearDomainEvents()
	}

	s.publishEvents(ctx, user.GetDomainEvents())
	user.ClearDomainEvents()

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return ToUserResponse(user), nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("login for unknown email")
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if !user.Active {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account has been deactivated")
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  *ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
	}
	if !user.Active {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account has been deactivated")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	return &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  *ToUserResponse(user),
	}, nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *AuthService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}
