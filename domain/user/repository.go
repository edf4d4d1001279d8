package user

import "context"

// Repository account storage of the backend fake
type Repository interface {
	// Save creates or replaces the account with the same email
	Save(ctx context.Context, account *Account) error

	// FindByEmail returns shared.ErrNotFound when no account has the email
	FindByEmail(ctx context.Context, email string) (*Account, error)
}
