/*
Package order drives the two order screens of the client:

  - Composer: create and edit an order (product cart, customer fields,
    validation, submission)
  - OrderList: filter, search, sort and act on existing orders

Both hold their state behind a mutex and talk to the API through OrderAPI.
*/
package order

import (
	"context"
	"time"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
)

// OrderAPI the remote operations the screens use. *remote.Client satisfies
// it.
type OrderAPI interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	SearchOrders(ctx context.Context, criteria order.FilterCriteria) ([]*order.Order, error)
	GetOrderLineItems(ctx context.Context, orderID string) ([]order.LineItem, error)
	CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error)
	UpdateOrder(ctx context.Context, id string, draft order.Draft) (*order.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// Clock returns the current time
type Clock func() time.Time
