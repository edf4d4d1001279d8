package mock

import (
	"context"

	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
)

// UserRepository in-memory user.Repository keyed by normalized email
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Save(ctx context.Context, a *user.Account) error {
	unlock := r.store.writeLock(ctx)
	defer unlock()

	r.store.accounts[a.Email().Value()] = a
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.Account, error) {
	key := user.NormalizeEmail(email)

	unlock := r.store.readLock(ctx)
	defer unlock()

	a, ok := r.store.accounts[key]
	if !ok {
		return nil, user.NewUserNotFoundError(email)
	}
	return a, nil
}

var _ user.Repository = (*UserRepository)(nil)
