package order

import (
	"context"
	"sync"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
)

// fakeAPI records calls and answers from canned values. A search call can be
// held on a channel to control the order responses arrive in.
type fakeAPI struct {
	mu sync.Mutex

	products    []catalog.Product
	productsErr error

	orders    []*order.Order
	searchErr error
	searches  []order.FilterCriteria
	holdNext  []chan struct{}
	results   [][]*order.Order

	items    map[string][]order.LineItem
	itemsErr error

	created   []order.Draft
	updated   []order.Draft
	submitErr error
	gate      chan struct{}

	deleted   []string
	deleteErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		products: catalog.Standard(),
		items:    map[string][]order.LineItem{},
	}
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return append([]catalog.Product(nil), f.products...), nil
}

func (f *fakeAPI) SearchOrders(ctx context.Context, criteria order.FilterCriteria) ([]*order.Order, error) {
	f.mu.Lock()
	f.searches = append(f.searches, criteria)
	var (
		wait   chan struct{}
		result []*order.Order
		queued bool
	)
	if len(f.holdNext) > 0 {
		wait = f.holdNext[0]
		f.holdNext = f.holdNext[1:]
	}
	if len(f.results) > 0 {
		result, queued = f.results[0], true
		f.results = f.results[1:]
	}
	err := f.searchErr
	if !queued {
		result = make([]*order.Order, len(f.orders))
		copy(result, f.orders)
	}
	f.mu.Unlock()

	if wait != nil {
		<-wait
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *fakeAPI) GetOrderLineItems(ctx context.Context, orderID string) ([]order.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items[orderID], nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, draft)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &order.Order{ID: "99", CustomerName: draft.CustomerName}, nil
}

func (f *fakeAPI) UpdateOrder(ctx context.Context, id string, draft order.Draft) (*order.Order, error) {
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, draft)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &order.Order{ID: id, CustomerName: draft.CustomerName}, nil
}

func (f *fakeAPI) DeleteOrder(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) waitGate() {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeAPI) searchCalls() []order.FilterCriteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]order.FilterCriteria(nil), f.searches...)
}
