package mock

import (
	"context"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
)

// ProductRepository the fixed product list. It never changes after NewStore,
// so reads take no lock.
type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	return r.store.products.Products(), nil
}

func (r *ProductRepository) Find(code string) (catalog.Product, bool) {
	return r.store.products.Find(code)
}

var _ catalog.Repository = (*ProductRepository)(nil)
