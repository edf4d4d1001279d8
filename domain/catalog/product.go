// Package catalog holds the product catalog as the client sees it: the list
// fetched from the API on screen entry plus the fixed set of product keys the
// order filter offers.
package catalog

import (
	"context"
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// Product an item that can be ordered. Immutable.
type Product struct {
	Code        string
	Description string
	UnitPrice   shared.Money
}

// Catalog an in-memory product list indexed by code. A nil *Catalog is empty.
type Catalog struct {
	products []Product
	byCode   map[string]int
}

// New builds a catalog. When a code repeats the first entry wins.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byCode:   make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byCode[p.Code]; dup {
			continue
		}
		c.byCode[p.Code] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Find looks a product up by code
func (c *Catalog) Find(code string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.byCode[code]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Products returns a copy of the products in fetch order
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// FilterProduct an entry of the product filter on the order list.
type FilterProduct struct {
	Key   string
	Label string
	Price shared.Money
}

var filterProducts = []FilterProduct{
	{Key: "FILE", Label: "Filé de Tilápia - 1kg", Price: shared.MustParseMoney("53.90")},
	{Key: "MEIOFILE", Label: "Filé de Tilápia - 500g", Price: shared.MustParseMoney("29.90")},
	{Key: "TIRAS", Label: "Filé de Tilápia em tiras", Price: shared.MustParseMoney("24.90")},
	{Key: "COSTELINHA", Label: "Costelinha de Tilápia", Price: shared.MustParseMoney("26.90")},
	{Key: "ESPALMADA", Label: "Tilápia inteira espalmada", Price: shared.MustParseMoney("31.90")},
	{Key: "EMPANADINHO", Label: "Empanadinho de Tilápia", Price: shared.MustParseMoney("34.90")},
	{Key: "COMBO", Label: "Filé + Tiras", Price: shared.MustParseMoney("51.90")},
	{Key: "TEMPERO", Label: "Tempero Supreme", Price: shared.MustParseMoney("3.00")},
}

// FilterProducts returns the fixed product keys offered by the order filter.
func FilterProducts() []FilterProduct {
	out := make([]FilterProduct, len(filterProducts))
	copy(out, filterProducts)
	return out
}

// NormalizeKey upper-cases and trims a product key.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// LabelFor returns the label of a filter key, or the key itself when unknown.
func LabelFor(key string) string {
	key = NormalizeKey(key)
	for _, p := range filterProducts {
		if p.Key == key {
			return p.Label
		}
	}
	return key
}

// IsKnownKey reports whether key is one of the filter product keys.
func IsKnownKey(key string) bool {
	key = NormalizeKey(key)
	for _, p := range filterProducts {
		if p.Key == key {
			return true
		}
	}
	return false
}

// Standard returns the business's product list as a catalog. The backend
// fake seeds its store from it.
func Standard() []Product {
	out := make([]Product, 0, len(filterProducts))
	for _, p := range filterProducts {
		out = append(out, Product{Code: p.Key, Description: p.Label, UnitPrice: p.Price})
	}
	return out
}

// Repository the product list served by the backend fake
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Find(code string) (Product, bool)
}
