package order

import (
	"context"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// Repository order repository used by the backend fake
type Repository interface {
	// NextIdentity generates a new order ID
	NextIdentity() string

	// Save creates or replaces an order
	Save(ctx context.Context, order *Order) error

	// FindByID returns ErrOrderNotFound when absent
	FindByID(ctx context.Context, id string) (*Order, error)

	// Find returns the orders satisfying spec; a nil spec matches all
	Find(ctx context.Context, spec shared.Specification[*Order]) ([]*Order, error)

	// Remove deletes an order, ErrOrderNotFound when absent
	Remove(ctx context.Context, id string) error
}

// CustomerRepository customer repository used by the backend fake
type CustomerRepository interface {
	NextIdentity() string
	Save(ctx context.Context, customer *Customer) error

	// FindByID and FindByPhone return shared.ErrNotFound when absent
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
}
