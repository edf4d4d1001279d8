/*
Package backend the use cases of the backend fake: the order API the client
talks to, served from in-memory repositories.

Writes run inside a UnitOfWork so customer resolution and the order save
commit together. Domain errors are returned as they are; the HTTP layer maps
them to status codes.
*/
package backend

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// MsgOrderRemoved body message of a successful delete
const MsgOrderRemoved = "Pedido removido com sucesso!"

// OrderService order use cases
type OrderService struct {
	orders        order.Repository
	customers     order.CustomerRepository
	products      catalog.Repository
	domainService *order.DomainService
	uow           shared.UnitOfWork
	loc           *time.Location
	log           *zap.Logger
}

// NewOrderService creates the order service. loc is the zone wire
// timestamps are read in; nil means time.Local.
func NewOrderService(
	orders order.Repository,
	customers order.CustomerRepository,
	products catalog.Repository,
	uow shared.UnitOfWork,
	loc *time.Location,
) *OrderService {
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		orders:        orders,
		customers:     customers,
		products:      products,
		domainService: order.NewDomainService(customers, products),
		uow:           uow,
		loc:           loc,
		log:           logger.Named("order_service"),
	}
}

// ListProducts returns the product list
func (s *OrderService) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListOrders returns every order as a summary, items included
func (s *OrderService) ListOrders(ctx context.Context) ([]OrderSummaryResponse, error) {
	orders, err := s.orders.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	return toSummaryResponses(orders), nil
}

// SearchOrders filters orders: customer name as a case-insensitive
// substring, phone as a substring, product as an exact code held with a
// positive quantity, dates as inclusive bounds each applied on its own. An
// unknown product code matches nothing.
func (s *OrderService) SearchOrders(ctx context.Context, req SearchRequest) ([]OrderSummaryResponse, error) {
	criteria := order.FilterCriteria{
		CustomerName: strings.TrimSpace(req.Cliente),
		Phone:        strings.TrimSpace(req.Telefone),
		ProductKey:   catalog.NormalizeKey(req.Produto),
	}
	var err error
	if criteria.DateFrom, err = s.parseBound("inicio", req.Inicio); err != nil {
		return nil, err
	}
	if criteria.DateTo, err = s.parseBound("fim", req.Fim); err != nil {
		return nil, err
	}

	if criteria.ProductKey != "" {
		if _, ok := s.products.Find(criteria.ProductKey); !ok {
			return []OrderSummaryResponse{}, nil
		}
	}

	orders, err := s.orders.Find(ctx, order.NewSearchSpecification(criteria))
	if err != nil {
		return nil, err
	}
	return toSummaryResponses(orders), nil
}

func (s *OrderService) parseBound(name, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := shared.ParseWireTime(value, s.loc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeBadRequest, "Parâmetro inválido: "+name)
	}
	return &t, nil
}

// GetOrder returns one order with its customer and items
func (s *OrderService) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetOrderItems returns the line items of one order
func (s *OrderService) GetOrderItems(ctx context.Context, id string) ([]ItemResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponses(o.Items), nil
}

// CreateOrder creates an order for the customer identified by phone. An
// existing customer gets the request's name and address; an unknown phone
// creates the customer.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	deliveryAt, err := s.parseDelivery(req.DataEntrega)
	if err != nil {
		return nil, err
	}

	var saved *order.Order
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		items, err := s.domainService.PriceItems(toItemRequests(req.Itens))
		if err != nil {
			return err
		}
		customer, err := s.domainService.ResolveCustomer(ctx, order.Customer{
			Name:    req.Nome,
			Phone:   req.Telefone,
			Address: req.Endereco,
		})
		if err != nil {
			return err
		}

		o := &order.Order{
			ID:          s.orders.NextIdentity(),
			DeliveryAt:  deliveryAt,
			DeliveryFee: nonNegative(req.TaxaEntrega),
			Items:       items,
		}
		assignCustomer(o, customer)
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		saved = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", saved.ID),
		zap.String("customer_id", saved.CustomerID),
		zap.Int("items", len(saved.Items)),
	)
	return toOrderResponse(saved), nil
}

// UpdateOrder replaces the delivery time, fee and items of an order and
// re-resolves its customer: by cliente.id when given, by phone otherwise.
// Items with a non-positive quantity are dropped.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*OrderResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if req.Cliente == nil {
		return nil, apperrors.BadRequest("cliente é obrigatório")
	}
	deliveryAt, err := s.parseDelivery(req.DataEntrega)
	if err != nil {
		return nil, err
	}

	var saved *order.Order
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		items, err := s.domainService.PriceItems(toItemRequests(req.Itens))
		if err != nil {
			return err
		}
		customer, err := s.domainService.ResolveCustomer(ctx, order.Customer{
			ID:      string(req.Cliente.ID),
			Name:    req.Cliente.Nome,
			Phone:   req.Cliente.Telefone,
			Address: req.Cliente.Endereco,
		})
		if err != nil {
			return err
		}

		existing.DeliveryAt = deliveryAt
		existing.DeliveryFee = nonNegative(req.TaxaEntrega)
		existing.Items = items
		assignCustomer(existing, customer)
		if err := s.orders.Save(ctx, existing); err != nil {
			return err
		}
		saved = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order updated", zap.String("order_id", saved.ID), zap.Int("items", len(saved.Items)))
	return toOrderResponse(saved), nil
}

// DeleteOrder removes an order
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.orders.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("order removed", zap.String("order_id", id))
	return nil
}

// parseDelivery reads dataEntrega; an empty value leaves the order without
// a delivery time
func (s *OrderService) parseDelivery(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := shared.ParseWireTime(value, s.loc)
	if err != nil {
		return time.Time{}, apperrors.Wrap(err, apperrors.CodeBadRequest, "dataEntrega inválida: "+value)
	}
	return t, nil
}

// validateID accepts positive integer ids, the only kind the store issues
func validateID(id string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return apperrors.New(apperrors.CodeInvalidOrderRef, "ID de pedido inválido: "+id)
	}
	return nil
}

func assignCustomer(o *order.Order, c *order.Customer) {
	o.CustomerID = c.ID
	o.CustomerName = c.Name
	o.Phone = c.Phone
	o.Address = c.Address
}

func nonNegative(m shared.Money) shared.Money {
	if m.IsNegative() {
		return shared.Money{}
	}
	return m
}
