package mock

import (
	"context"
	"sort"
	"strconv"

	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// OrderRepository in-memory order.Repository. Orders keep a customer
// reference; reads join the current customer record so a customer updated
// by a later order shows on every order of that customer.
type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) NextIdentity() string {
	return nextID(&r.store.orderSeq)
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	unlock := r.store.writeLock(ctx)
	defer unlock()

	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	unlock := r.store.readLock(ctx)
	defer unlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return r.join(o), nil
}

// Find returns matching orders by ascending id
func (r *OrderRepository) Find(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	unlock := r.store.readLock(ctx)
	defer unlock()

	all := make([]*order.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		all = append(all, r.join(o))
	}
	sort.Slice(all, func(i, j int) bool {
		return idLess(all[i].ID, all[j].ID)
	})
	return shared.Filter(all, spec), nil
}

func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	unlock := r.store.writeLock(ctx)
	defer unlock()

	if _, ok := r.store.orders[id]; !ok {
		return order.NewOrderNotFoundError(id)
	}
	delete(r.store.orders, id)
	return nil
}

// Len returns the number of stored orders
func (r *OrderRepository) Len() int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.orders)
}

func (r *OrderRepository) join(o *order.Order) *order.Order {
	out := cloneOrder(o)
	if c, ok := r.store.customers[o.CustomerID]; ok {
		out.CustomerName = c.Name
		out.Phone = c.Phone
		out.Address = c.Address
	}
	return out
}

func cloneOrder(o *order.Order) *order.Order {
	out := *o
	if o.Items != nil {
		out.Items = make([]order.LineItem, len(o.Items))
		copy(out.Items, o.Items)
	}
	return &out
}

// idLess orders numeric ids numerically, anything else after them by text
func idLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

var _ order.Repository = (*OrderRepository)(nil)
