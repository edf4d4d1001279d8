package backend

import (
	"context"

	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// AuthService login against the seeded accounts
type AuthService struct {
	domainService *user.DomainService
	log           *zap.Logger
}

// NewAuthService creates the auth service
func NewAuthService(users user.Repository) *AuthService {
	return &AuthService{
		domainService: user.NewDomainService(users),
		log:           logger.Named("auth_service"),
	}
}

// Login returns the user for a matching email and password. Any mismatch is
// user.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	u, err := s.domainService.Authenticate(ctx, user.Credentials{Email: req.Email, Password: req.Senha})
	if err != nil {
		s.log.Info("login rejected", zap.String("email", user.Email(user.NormalizeEmail(req.Email)).Masked()))
		return nil, err
	}
	return toUserResponse(u), nil
}
