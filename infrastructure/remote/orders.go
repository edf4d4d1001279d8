package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
)

const (
	msgMissingID       = "ID do pedido não fornecido."
	msgMissingUpdateID = "ID do pedido não fornecido para atualização."
)

var (
	summaryMessages = messages{
		connection: "Erro ao buscar pedidos",
		rejected:   "Erro ao buscar pedidos",
	}
	searchMessages = messages{
		connection: "Erro ao conectar com o servidor para buscar pedidos.",
		rejected:   "Falha ao buscar pedidos no servidor.",
	}
	getMessages = messages{
		connection: "Erro ao conectar com o servidor para buscar pedidos.",
		rejected:   "Pedido não encontrado.",
	}
	itemsMessages = messages{
		connection: "Erro ao carregar itens.",
		rejected:   "Erro ao carregar itens.",
	}
	createMessages = messages{
		connection: "Erro ao cadastrar pedido.",
		rejected:   "Falha ao cadastrar o pedido.",
	}
	updateMessages = messages{
		connection: "Erro de conexão ao atualizar pedido.",
		rejected:   "Falha ao atualizar o pedido.",
	}
	deleteMessages = messages{
		connection: "Erro de conexão ao deletar pedido.",
		rejected:   "Falha ao excluir o pedido.",
	}
)

// ListOrderSummaries fetches GET /pedidos. Summaries may omit line items.
func (c *Client) ListOrderSummaries(ctx context.Context) ([]*order.Order, error) {
	var dtos []orderDTO
	if err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/pedidos",
		msgs:   summaryMessages,
	}, &dtos); err != nil {
		return nil, err
	}
	return c.toOrders(dtos), nil
}

// SearchOrders fetches GET /pedidos/buscar with a query built from the
// present criteria fields only. Dates are sent as given; callers widen them
// to whole days (see order.FilterCriteria.Normalized).
func (c *Client) SearchOrders(ctx context.Context, criteria order.FilterCriteria) ([]*order.Order, error) {
	var dtos []orderDTO
	if err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/pedidos/buscar",
		query:  SearchQuery(criteria),
		msgs:   searchMessages,
	}, &dtos); err != nil {
		return nil, err
	}
	return c.toOrders(dtos), nil
}

// SearchQuery builds the /pedidos/buscar query. Absent fields are omitted,
// so empty criteria yield no query string at all.
func SearchQuery(criteria order.FilterCriteria) url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(criteria.CustomerName); v != "" {
		q.Set("cliente", v)
	}
	if v := strings.TrimSpace(criteria.Phone); v != "" {
		q.Set("telefone", v)
	}
	if criteria.DateFrom != nil {
		q.Set("inicio", shared.FormatWireTime(*criteria.DateFrom))
	}
	if criteria.DateTo != nil {
		q.Set("fim", shared.FormatWireTime(*criteria.DateTo))
	}
	if v := strings.TrimSpace(criteria.ProductKey); v != "" {
		q.Set("produto", strings.ToUpper(v))
	}
	return q
}

// GetOrder fetches GET /pedidos/{id}
func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	if invalidID(id) {
		return nil, apperrors.Validation(msgMissingID)
	}
	var dto orderDTO
	if err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/pedidos/" + pathID(id),
		msgs:   getMessages,
	}, &dto); err != nil {
		return nil, err
	}
	o := order.Normalize(dto.toRecord(), c.loc)
	if o.ID == "" {
		o.ID = strings.TrimSpace(id)
	}
	return o, nil
}

// GetOrderLineItems fetches GET /pedidos/{id}/itens
func (c *Client) GetOrderLineItems(ctx context.Context, orderID string) ([]order.LineItem, error) {
	if invalidID(orderID) {
		return nil, apperrors.Validation(msgMissingID)
	}
	var dtos []itemDTO
	if err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/pedidos/" + pathID(orderID) + "/itens",
		msgs:   itemsMessages,
	}, &dtos); err != nil {
		return nil, err
	}
	items := make([]order.LineItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// CreateOrder submits a new order with POST /pedidos/mobile. The payload
// carries no id and the customer fields at the top level.
func (c *Client) CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	var dto orderDTO
	if err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/pedidos/mobile",
		body:   newCreatePayload(draft),
		msgs:   createMessages,
	}, &dto); err != nil {
		return nil, err
	}
	return order.Normalize(dto.toRecord(), c.loc), nil
}

// UpdateOrder replaces an order with PUT /pedidos/{id}. An empty id fails
// locally without a request.
func (c *Client) UpdateOrder(ctx context.Context, id string, draft order.Draft) (*order.Order, error) {
	if invalidID(id) {
		return nil, apperrors.Validation(msgMissingUpdateID)
	}
	var dto orderDTO
	if err := c.call(ctx, request{
		method: http.MethodPut,
		path:   "/pedidos/" + pathID(id),
		body:   newUpdatePayload(strings.TrimSpace(id), draft),
		msgs:   updateMessages,
	}, &dto); err != nil {
		return nil, err
	}
	return order.Normalize(dto.toRecord(), c.loc), nil
}

// DeleteOrder removes an order with DELETE /pedidos/{id}. An empty id fails
// locally without a request.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if invalidID(id) {
		return apperrors.Validation(msgMissingID)
	}
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   "/pedidos/" + pathID(id),
		msgs:   deleteMessages,
	}, nil)
}

func (c *Client) toOrders(dtos []orderDTO) []*order.Order {
	orders := make([]*order.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, order.Normalize(d.toRecord(), c.loc))
	}
	return orders
}
