/*
Package mock in-memory persistence for the backend fake.

All repositories share one Store and its lock. UnitOfWork.Execute holds the
write lock for the whole unit and snapshots the maps first, so a failed unit
leaves the store exactly as it found it. Repositories called with the unit's
context skip their own locking.
*/
package mock

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
)

// Store the shared state behind every mock repository
type Store struct {
	mu sync.RWMutex

	orders    map[string]*order.Order
	customers map[string]*order.Customer
	accounts  map[string]*user.Account

	orderSeq    atomic.Int64
	customerSeq atomic.Int64
	userSeq     atomic.Int64

	products *catalog.Catalog
}

// NewStore creates an empty store serving products
func NewStore(products []catalog.Product) *Store {
	return &Store{
		orders:    make(map[string]*order.Order),
		customers: make(map[string]*order.Customer),
		accounts:  make(map[string]*user.Account),
		products:  catalog.New(products),
	}
}

// SeedUser adds a login account with the next user id
func (s *Store) SeedUser(ctx context.Context, name, email, password string) (*user.Account, error) {
	account, err := user.NewAccount(nextID(&s.userSeq), name, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Users().Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Orders returns the order repository view of the store
func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}

// Customers returns the customer repository view of the store
func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

// Users returns the account repository view of the store
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Products returns the product repository view of the store
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

// UnitOfWork returns a unit of work over the store
func (s *Store) UnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(*Store)
	return held == s
}

func (s *Store) readLock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) writeLock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func nextID(seq *atomic.Int64) string {
	return strconv.FormatInt(seq.Add(1), 10)
}

type snapshot struct {
	orders    map[string]*order.Order
	customers map[string]*order.Customer
	accounts  map[string]*user.Account
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		orders:    make(map[string]*order.Order, len(s.orders)),
		customers: make(map[string]*order.Customer, len(s.customers)),
		accounts:  make(map[string]*user.Account, len(s.accounts)),
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.orders = snap.orders
	s.customers = snap.customers
	s.accounts = snap.accounts
}

// UnitOfWork serializes a unit against the store and rolls it back on error.
// Stored values are replaced, never mutated, so the snapshot can share them.
type UnitOfWork struct {
	store *Store
}

// Execute runs fn holding the store's write lock. Nested calls with the
// unit's context join the outer unit.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.store.inTx(ctx) {
		return fn(ctx)
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snap := u.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, u.store)); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// Ping reports whether the store can be read before ctx is done. A unit
// stuck holding the write lock makes it fail.
func (s *Store) Ping(ctx context.Context) error {
	acquired := make(chan struct{})
	go func() {
		s.mu.RLock()
		close(acquired)
		s.mu.RUnlock()
	}()
	select {
	case <-acquired:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
