package order

import (
	"strings"
	"time"

	"github.com/keilahoriye/tilapiasuprememobile/domain/cart"
	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// UnknownItemDescription labels a line whose product is in neither the
// order nor the catalog.
const UnknownItemDescription = "Item Desconhecido"

// Record a server order as received. The API reports the customer in more
// than one shape: flat fields (nomeCliente, telefone, endereco, clienteId),
// a bare nome, or a nested cliente object. Any of them may be missing.
type Record struct {
	ID           string
	CustomerID   string
	CustomerName string
	Name         string
	Customer     *Customer
	Phone        string
	Address      string
	DeliveryAt   string
	DeliveryFee  shared.Money
	Items        []LineItem
}

// Normalize reconciles a Record into an Order. Each field takes the first
// non-empty value of its fallback chain:
//
//	customer id: clienteId, cliente.id
//	name:        nomeCliente, nome, cliente.nome
//	phone:       telefone, cliente.telefone
//	address:     endereco, cliente.endereco
//
// Zone-less delivery times are read in loc; an unparseable one leaves
// DeliveryAt zero.
func Normalize(r Record, loc *time.Location) *Order {
	nested := Customer{}
	if r.Customer != nil {
		nested = *r.Customer
	}

	o := &Order{
		ID:           strings.TrimSpace(r.ID),
		CustomerID:   firstNonEmpty(r.CustomerID, nested.ID),
		CustomerName: firstNonEmpty(r.CustomerName, r.Name, nested.Name),
		Phone:        firstNonEmpty(r.Phone, nested.Phone),
		Address:      firstNonEmpty(r.Address, nested.Address),
		DeliveryFee:  r.DeliveryFee,
	}
	if t, err := shared.ParseWireTime(r.DeliveryAt, loc); err == nil {
		o.DeliveryAt = t
	}
	if r.Items != nil {
		o.Items = make([]LineItem, len(r.Items))
		copy(o.Items, r.Items)
	}
	return o
}

// DraftFromOrder hydrates an edit draft from an order. Lines are rebuilt by
// joining the order's items against cat by product code:
//
//	unit price:  item price (when non-zero), catalog price, 0
//	description: item description, catalog description, "Item Desconhecido"
//
// An order without a delivery time gets now. Items with a non-positive
// quantity are dropped.
func DraftFromOrder(o *Order, cat *catalog.Catalog, now time.Time) Draft {
	d := Draft{
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		DeliveryAt:   o.DeliveryAt,
		DeliveryFee:  o.DeliveryFee,
	}
	if d.DeliveryAt.IsZero() {
		d.DeliveryAt = now
	}
	if d.DeliveryFee.IsNegative() {
		d.DeliveryFee = shared.Money{}
	}

	lines := make([]cart.Line, 0, len(o.Items))
	for _, it := range o.Items {
		product, known := cat.Find(it.ProductCode)

		price := it.UnitPrice
		if price.IsZero() && known {
			price = product.UnitPrice
		}

		desc := strings.TrimSpace(it.Description)
		if desc == "" && known {
			desc = product.Description
		}
		if desc == "" {
			desc = UnknownItemDescription
		}

		lines = append(lines, cart.Line{
			ProductCode: it.ProductCode,
			Description: desc,
			UnitPrice:   price,
			Quantity:    it.Quantity,
		})
	}

	c := cart.New()
	c.Restore(lines)
	d.Lines = c.Lines()
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
