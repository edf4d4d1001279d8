package backend

import (
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
)

func toItemRequests(items []ItemRequest) []order.LineItem {
	out := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, order.LineItem{
			ProductCode: strings.TrimSpace(it.Produto),
			Quantity:    it.Quantidade,
			UnitPrice:   it.PrecoUnitario,
		})
	}
	return out
}

func toItemResponses(items []order.LineItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemResponse{
			Produto:       it.ProductCode,
			Descricao:     it.Description,
			Quantidade:    it.Quantity,
			PrecoUnitario: it.UnitPrice,
			Subtotal:      it.Total(),
		})
	}
	return out
}

func wireTime(o *order.Order) *string {
	if o.DeliveryAt.IsZero() {
		return nil
	}
	s := shared.FormatWireTime(o.DeliveryAt)
	return &s
}

func toOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID: ID(o.ID),
		Cliente: CustomerResponse{
			ID:       ID(o.CustomerID),
			Nome:     o.CustomerName,
			Telefone: o.Phone,
			Endereco: o.Address,
		},
		DataEntrega: wireTime(o),
		TaxaEntrega: o.DeliveryFee,
		Itens:       toItemResponses(o.Items),
	}
}

func toSummaryResponse(o *order.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:          ID(o.ID),
		NomeCliente: o.CustomerName,
		Telefone:    o.Phone,
		Endereco:    o.Address,
		DataEntrega: wireTime(o),
		TaxaEntrega: o.DeliveryFee,
		Itens:       toItemResponses(o.Items),
	}
}

func toSummaryResponses(orders []*order.Order) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toSummaryResponse(o))
	}
	return out
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			Codigo:    p.Code,
			Descricao: p.Description,
			Preco:     p.UnitPrice,
		})
	}
	return out
}

func toUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:    ID(u.ID),
		Nome:  u.Name,
		Email: u.Email,
	}
}
