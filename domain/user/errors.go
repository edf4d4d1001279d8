package user

import (
	"errors"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

var (
	ErrInvalidEmail       = errors.New("e-mail inválido")
	ErrEmptyPassword      = errors.New("a senha não pode ser vazia")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewInvalidCredentialsError the error login answers with. The message is
// shown to the user as is.
func NewInvalidCredentialsError() error {
	return &userDomainError{
		sentinel: ErrInvalidCredentials,
		entity:   "user",
		message:  "E-mail ou senha inválidos!",
		stack:    shared.CaptureStack(3),
	}
}

func NewUserNotFoundError(email string) error {
	return &userDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "user",
		message:  "user not found: " + email,
		stack:    shared.CaptureStack(3),
	}
}

type userDomainError struct {
	sentinel error
	entity   string
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string {
	return e.message
}

func (e *userDomainError) Unwrap() error {
	return e.sentinel
}

func (e *userDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
