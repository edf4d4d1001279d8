package user

import (
	"context"
	"errors"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// DomainService User domain service
type DomainService struct {
	repo Repository
}

// NewDomainService Create user domain service
func NewDomainService(repo Repository) *DomainService {
	return &DomainService{repo: repo}
}

// Authenticate returns the user owning the credentials. Blank forms, unknown
// emails and wrong passwords all yield ErrInvalidCredentials so callers
// cannot tell them apart.
func (s *DomainService) Authenticate(ctx context.Context, c Credentials) (*User, error) {
	if c.Blank() {
		return nil, NewInvalidCredentialsError()
	}
	account, err := s.repo.FindByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, NewInvalidCredentialsError()
		}
		return nil, err
	}
	if !account.Matches(c) {
		return nil, NewInvalidCredentialsError()
	}
	u := account.User()
	return &u, nil
}
