package remote

import (
	"context"
	"net/http"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
)

var productMessages = messages{
	connection: "Falha ao buscar produtos da API.",
	rejected:   "Falha ao buscar produtos da API.",
}

// ListProducts fetches the product catalog with GET /produtos
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var dtos []productDTO
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/produtos",
		msgs:   productMessages,
	}, &dtos)
	if err != nil {
		return nil, err
	}
	return productsToDomain(dtos), nil
}
