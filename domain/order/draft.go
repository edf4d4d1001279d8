package order

import (
	"strings"
	"time"

	"github.com/keilahoriye/tilapiasuprememobile/domain/cart"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// Draft the client-side working copy of an order. A Draft with an OrderID
// updates that order; without one it creates a new order.
type Draft struct {
	OrderID      string
	CustomerID   string
	CustomerName string
	Phone        string
	Address      string
	DeliveryAt   time.Time
	DeliveryFee  shared.Money
	Lines        []cart.Line
}

// IsUpdate reports whether the draft edits an existing order
func (d Draft) IsUpdate() bool {
	return d.OrderID != ""
}

// Customer returns the draft's customer fields
func (d Draft) Customer() Customer {
	return Customer{ID: d.CustomerID, Name: d.CustomerName, Phone: d.Phone, Address: d.Address}
}

// ItemsTotal sums the draft lines
func (d Draft) ItemsTotal() shared.Money {
	var total shared.Money
	for _, l := range d.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Total returns items plus delivery fee
func (d Draft) Total() shared.Money {
	return d.ItemsTotal().Add(d.DeliveryFee)
}

// Validate checks the fields required before submission: customer name,
// phone, address, delivery time and at least one line. The first missing
// field is reported.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.CustomerName) == "":
		return NewIncompleteDraftError("nome")
	case strings.TrimSpace(d.Phone) == "":
		return NewIncompleteDraftError("telefone")
	case strings.TrimSpace(d.Address) == "":
		return NewIncompleteDraftError("endereco")
	case d.DeliveryAt.IsZero():
		return NewIncompleteDraftError("dataEntrega")
	case len(d.Lines) == 0:
		return NewIncompleteDraftError("itens")
	}
	return nil
}
