package mock

import (
	"context"
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// CustomerRepository in-memory order.CustomerRepository
type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) NextIdentity() string {
	return nextID(&r.store.customerSeq)
}

func (r *CustomerRepository) Save(ctx context.Context, c *order.Customer) error {
	unlock := r.store.writeLock(ctx)
	defer unlock()

	saved := *c
	r.store.customers[c.ID] = &saved
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*order.Customer, error) {
	unlock := r.store.readLock(ctx)
	defer unlock()

	c, ok := r.store.customers[id]
	if !ok {
		return nil, shared.NewNotFoundError("customer", "customer not found: "+id)
	}
	out := *c
	return &out, nil
}

// FindByPhone matches the trimmed phone exactly. With several customers on
// one phone the lowest id wins.
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*order.Customer, error) {
	unlock := r.store.readLock(ctx)
	defer unlock()

	phone = strings.TrimSpace(phone)
	var found *order.Customer
	if phone != "" {
		for _, c := range r.store.customers {
			if c.Phone == phone && (found == nil || idLess(c.ID, found.ID)) {
				found = c
			}
		}
	}
	if found == nil {
		return nil, shared.NewNotFoundError("customer", "customer not found by phone: "+phone)
	}
	out := *found
	return &out, nil
}

var _ order.CustomerRepository = (*CustomerRepository)(nil)
