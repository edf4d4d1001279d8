package order

import (
	"context"
	"errors"
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// ProductLookup finds catalog products by code. *catalog.Catalog satisfies it.
type ProductLookup interface {
	Find(code string) (catalog.Product, bool)
}

// DomainService order rules enforced by the backend fake: customer
// resolution and item pricing. It reads through repositories but never saves
// orders; the application service does.
type DomainService struct {
	customers CustomerRepository
	products  ProductLookup
}

// NewDomainService creates the order domain service
func NewDomainService(customers CustomerRepository, products ProductLookup) *DomainService {
	return &DomainService{
		customers: customers,
		products:  products,
	}
}

// ResolveCustomer finds the customer by id, or by phone when no id is given,
// and refreshes its name and address. The phone of an existing customer is
// kept. Unknown customers are created.
func (s *DomainService) ResolveCustomer(ctx context.Context, c Customer) (*Customer, error) {
	var (
		existing *Customer
		err      error
	)
	if id := strings.TrimSpace(c.ID); id != "" {
		existing, err = s.customers.FindByID(ctx, id)
	} else {
		existing, err = s.customers.FindByPhone(ctx, strings.TrimSpace(c.Phone))
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		created := &Customer{
			ID:      s.customers.NextIdentity(),
			Name:    strings.TrimSpace(c.Name),
			Phone:   strings.TrimSpace(c.Phone),
			Address: strings.TrimSpace(c.Address),
		}
		if err := s.customers.Save(ctx, created); err != nil {
			return nil, err
		}
		return created, nil
	}

	updated := *existing
	updated.Name = strings.TrimSpace(c.Name)
	updated.Address = strings.TrimSpace(c.Address)
	if err := s.customers.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// PriceItems validates product codes, fills missing unit prices and
// descriptions from the catalog and computes subtotals. Items with a
// non-positive quantity are dropped.
func (s *DomainService) PriceItems(items []LineItem) ([]LineItem, error) {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		code := strings.ToUpper(strings.TrimSpace(it.ProductCode))
		product, ok := s.products.Find(code)
		if !ok {
			return nil, NewUnknownProductError(it.ProductCode)
		}
		if it.Quantity <= 0 {
			continue
		}
		it.ProductCode = code
		if it.UnitPrice.IsZero() || it.UnitPrice.IsNegative() {
			it.UnitPrice = product.UnitPrice
		}
		it.Description = product.Description
		it.Subtotal = it.UnitPrice.Mul(it.Quantity)
		out = append(out, it)
	}
	return out, nil
}
