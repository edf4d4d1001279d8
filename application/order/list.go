package order

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

const (
	msgUnknownCustomer = "Cliente não informado"
	msgEditItems       = "Não foi possível carregar os itens para edição."
	msgDeleted         = "Pedido deletado com sucesso!"
)

// Trigger what started a fetch
type Trigger string

const (
	TriggerSearch  Trigger = "search"
	TriggerRefresh Trigger = "refresh"
	TriggerFocus   Trigger = "focus"
	TriggerClear   Trigger = "clear"
)

// Filters the list's filter fields as entered
type Filters struct {
	CustomerName string
	Phone        string
	ProductKey   string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// Row one order as the list renders it. Status and labels are derived from
// the clock at the time Rows is called.
type Row struct {
	Order         *order.Order
	Status        order.Status
	CustomerLabel string
	PhoneLabel    string
	DeliveryLabel string
	Total         shared.Money
}

// ListOption configures an OrderList
type ListOption func(*OrderList)

// WithListClock overrides time.Now
func WithListClock(clock Clock) ListOption {
	return func(l *OrderList) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithListLogger sets the logger
func WithListLogger(lg *zap.Logger) ListOption {
	return func(l *OrderList) {
		if lg != nil {
			l.log = lg
		}
	}
}

// WithDiscardStaleResponses drops a response when a newer fetch was issued
// after it. Without it the last response to arrive wins.
func WithDiscardStaleResponses(discard bool) ListOption {
	return func(l *OrderList) {
		l.discardStale = discard
	}
}

// OrderList the order list screen. Every fetch, whatever its trigger, runs
// through the same path and is tagged with a sequence number.
type OrderList struct {
	mu sync.Mutex

	api          OrderAPI
	clock        Clock
	log          *zap.Logger
	discardStale bool

	filters     Filters
	orders      []*order.Order
	message     string
	searchCount int
	issued      uint64
	inFlight    int
	closed      bool
}

// NewOrderList creates an empty list
func NewOrderList(api OrderAPI, opts ...ListOption) *OrderList {
	l := &OrderList{
		api:   api,
		clock: time.Now,
		log:   logger.Named("order_list"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *OrderList) SetCustomerName(v string) {
	l.mu.Lock()
	l.filters.CustomerName = v
	l.mu.Unlock()
}

func (l *OrderList) SetPhone(v string) {
	l.mu.Lock()
	l.filters.Phone = v
	l.mu.Unlock()
}

// SetProductKey selects a product filter; the key is upper-cased
func (l *OrderList) SetProductKey(v string) {
	l.mu.Lock()
	l.filters.ProductKey = catalog.NormalizeKey(v)
	l.mu.Unlock()
}

func (l *OrderList) SetDateFrom(t *time.Time) {
	l.mu.Lock()
	l.filters.DateFrom = copyTime(t)
	l.mu.Unlock()
}

func (l *OrderList) SetDateTo(t *time.Time) {
	l.mu.Lock()
	l.filters.DateTo = copyTime(t)
	l.mu.Unlock()
}

// Filters returns the current filter fields
func (l *OrderList) Filters() Filters {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := l.filters
	f.DateFrom = copyTime(f.DateFrom)
	f.DateTo = copyTime(f.DateTo)
	return f
}

// Criteria builds the search criteria from the filters: text trimmed,
// product key upper-cased, DateFrom at the start of its day and DateTo at
// the end of its day.
func (l *OrderList) Criteria() order.FilterCriteria {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.criteriaLocked()
}

func (l *OrderList) criteriaLocked() order.FilterCriteria {
	return order.FilterCriteria{
		CustomerName: l.filters.CustomerName,
		Phone:        l.filters.Phone,
		ProductKey:   l.filters.ProductKey,
		DateFrom:     l.filters.DateFrom,
		DateTo:       l.filters.DateTo,
	}.Normalized()
}

// Search runs the manual search and counts it
func (l *OrderList) Search(ctx context.Context) error {
	l.mu.Lock()
	l.searchCount++
	l.mu.Unlock()
	return l.fetch(ctx, TriggerSearch)
}

// Refresh reloads with the current filters (pull to refresh)
func (l *OrderList) Refresh(ctx context.Context) error {
	return l.fetch(ctx, TriggerRefresh)
}

// Focus reloads when the screen becomes visible
func (l *OrderList) Focus(ctx context.Context) error {
	return l.fetch(ctx, TriggerFocus)
}

// ClearFilters resets every filter and searches again
func (l *OrderList) ClearFilters(ctx context.Context) error {
	l.mu.Lock()
	l.filters = Filters{}
	l.searchCount++
	l.mu.Unlock()
	return l.fetch(ctx, TriggerClear)
}

// SearchCount returns how many manual searches ran
func (l *OrderList) SearchCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.searchCount
}

// fetch is the single fetch path. On success the orders are replaced,
// sorted by delivery time descending; on failure the prior orders stay and
// only the message is set. Responses arriving after Close, or stale ones when
// discarding is enabled, change nothing.
func (l *OrderList) fetch(ctx context.Context, trigger Trigger) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.issued++
	seq := l.issued
	criteria := l.criteriaLocked()
	l.inFlight++
	l.mu.Unlock()

	orders, err := l.api.SearchOrders(ctx, criteria)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--

	if l.closed {
		l.log.Debug("response after close discarded", zap.Uint64("seq", seq), zap.String("trigger", string(trigger)))
		return nil
	}
	if l.discardStale && seq < l.issued {
		l.log.Debug("stale response discarded", zap.Uint64("seq", seq), zap.Uint64("latest", l.issued))
		return nil
	}

	if err != nil {
		l.message = apperrors.MessageOf(err, "Não foi possível carregar os pedidos.")
		l.log.Warn("order search failed", zap.String("trigger", string(trigger)), zap.Error(err))
		return err
	}

	order.SortByDeliveryDesc(orders)
	l.orders = orders
	l.message = ""
	l.log.Debug("orders loaded", zap.String("trigger", string(trigger)), zap.Int("count", len(orders)))
	return nil
}

// Orders returns the current orders, newest delivery first
func (l *OrderList) Orders() []*order.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*order.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Rows returns the orders with status, labels and totals derived now
func (l *OrderList) Rows() []Row {
	l.mu.Lock()
	orders := make([]*order.Order, len(l.orders))
	copy(orders, l.orders)
	l.mu.Unlock()

	now := l.clock()
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, NewRow(o, now))
	}
	return rows
}

// NewRow derives the display fields of o at now
func NewRow(o *order.Order, now time.Time) Row {
	customer := strings.TrimSpace(o.CustomerName)
	if customer == "" {
		customer = msgUnknownCustomer
	}
	delivery := "-"
	if !o.DeliveryAt.IsZero() {
		delivery = o.DeliveryAt.Format("02/01 15:04")
	}
	return Row{
		Order:         o,
		Status:        order.StatusAt(o, now),
		CustomerLabel: customer,
		PhoneLabel:    order.FormatPhone(o.Phone),
		DeliveryLabel: delivery,
		Total:         o.Total(),
	}
}

// Len returns the number of orders shown
func (l *OrderList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

// Message returns the last failure message, empty after a success
func (l *OrderList) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

// Loading reports whether a fetch is in flight
func (l *OrderList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// Close marks the screen gone; later responses are discarded
func (l *OrderList) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// Details fetches the line items of one order on demand
func (l *OrderList) Details(ctx context.Context, orderID string) ([]order.LineItem, error) {
	items, err := l.api.GetOrderLineItems(ctx, orderID)
	if err != nil {
		l.log.Warn("order items unavailable", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// PrepareEdit fetches the line items of o and returns a copy carrying them,
// ready for NewEditComposer.
func (l *OrderList) PrepareEdit(ctx context.Context, o *order.Order) (*order.Order, error) {
	items, err := l.api.GetOrderLineItems(ctx, o.ID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeValidation) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.AsAppError(err).Code, msgEditItems)
	}
	out := *o
	out.Items = items
	return &out, nil
}

// Delete removes an order remotely and, only on success, from the list.
func (l *OrderList) Delete(ctx context.Context, orderID string) (string, error) {
	if err := l.api.DeleteOrder(ctx, orderID); err != nil {
		l.log.Warn("order delete failed", zap.String("order_id", orderID), zap.Error(err))
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.orders[:0:0]
	for _, o := range l.orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	l.orders = kept
	return msgDeleted, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
