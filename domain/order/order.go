/*
Package order - orders as the client handles them

  - Order: a server-owned order, already reconciled from whichever response
    shape the API used
  - Draft: the client-side working copy submitted on create or update
  - FilterCriteria: the order list search fields
  - Record: a raw server order before reconciliation (see Normalize)

Totals and status are derived on demand and never stored.
*/
package order

import (
	"sort"
	"time"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// Status delivery status shown on the order list
type Status string

const (
	StatusPending   Status = "PENDENTE"
	StatusDelivered Status = "ENTREGUE"
)

// Label returns the display label of the status
func (s Status) Label() string {
	switch s {
	case StatusDelivered:
		return "Entregue"
	case StatusPending:
		return "Pendente"
	default:
		return string(s)
	}
}

// Customer the person an order is delivered to
type Customer struct {
	ID      string
	Name    string
	Phone   string
	Address string
}

// LineItem one product and quantity inside an order
type LineItem struct {
	ProductCode string
	Description string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// Total returns Quantity x UnitPrice. The server's subtotal is informative
// only.
func (li LineItem) Total() shared.Money {
	return li.UnitPrice.Mul(li.Quantity)
}

// Order a server-owned order
type Order struct {
	ID           string
	CustomerID   string
	CustomerName string
	Phone        string
	Address      string
	DeliveryAt   time.Time // zero when the server sent none
	DeliveryFee  shared.Money
	Items        []LineItem // nil when fetched from the summary endpoint
}

// Customer returns the customer fields of the order
func (o *Order) Customer() Customer {
	return Customer{ID: o.CustomerID, Name: o.CustomerName, Phone: o.Phone, Address: o.Address}
}

// HasItems reports whether line items were loaded
func (o *Order) HasItems() bool {
	return len(o.Items) > 0
}

// ItemsTotal sums the line items
func (o *Order) ItemsTotal() shared.Money {
	var total shared.Money
	for _, it := range o.Items {
		total = total.Add(it.Total())
	}
	return total
}

// Total returns items plus delivery fee
func (o *Order) Total() shared.Money {
	return o.ItemsTotal().Add(o.DeliveryFee)
}

// StatusAt derives the delivery status at now: delivered once the delivery
// time has passed, pending otherwise. Orders without a delivery time are
// pending.
func StatusAt(o *Order, now time.Time) Status {
	if o.DeliveryAt.IsZero() || o.DeliveryAt.After(now) {
		return StatusPending
	}
	return StatusDelivered
}

// SortByDeliveryDesc sorts orders by delivery time, newest first. Orders
// without a delivery time go last; ties keep their relative order.
func SortByDeliveryDesc(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].DeliveryAt, orders[j].DeliveryAt
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})
}
