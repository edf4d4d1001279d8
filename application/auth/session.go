// Package auth holds the signed-in state of the client.
package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// Authenticator performs the remote login. *remote.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
}

// Session the current user, set by a successful Login
type Session struct {
	mu   sync.RWMutex
	auth Authenticator
	user *user.User
	log  *zap.Logger
}

// NewSession creates a signed-out session
func NewSession(auth Authenticator) *Session {
	return &Session{
		auth: auth,
		log:  logger.Named("session"),
	}
}

// Login authenticates and, on success, replaces the current user. A failed
// login leaves the session as it was.
func (s *Session) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Info("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()

	s.log.Info("login succeeded", zap.String("user_id", u.ID))
	return u, nil
}

// User returns the signed-in user, nil when signed out
func (s *Session) User() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Greeting returns the home screen greeting for the current user
func (s *Session) Greeting() string {
	return s.User().Greeting()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Logout forgets the current user
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
