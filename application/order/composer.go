package order

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/domain/cart"
	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// Mode whether a Composer creates or edits an order
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Title returns the screen title of the mode
func (m Mode) Title() string {
	if m == ModeEdit {
		return "Editar Pedido"
	}
	return "Novo Pedido"
}

const (
	msgIncomplete      = "Preencha todos os dados e adicione itens ao pedido."
	msgProductNotFound = "Produto não encontrado no catálogo."
	msgSubmitting      = "O pedido já está sendo enviado."
)

// SubmitResult the outcome of a successful Submit
type SubmitResult struct {
	Order   *order.Order
	Message string
}

// Summary the "calcular total" breakdown
type Summary struct {
	ItemsTotal shared.Money
	Fee        shared.Money
	Total      shared.Money
}

// String renders the breakdown the way the order screen shows it
func (s Summary) String() string {
	return "Itens: " + s.ItemsTotal.FormatBRL() +
		"\nTaxa: " + s.Fee.FormatBRL() +
		"\n\nTOTAL: " + s.Total.FormatBRL()
}

// ComposerOption configures a Composer
type ComposerOption func(*Composer)

// WithComposerClock overrides time.Now
func WithComposerClock(clock Clock) ComposerOption {
	return func(c *Composer) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithComposerLogger sets the logger
func WithComposerLogger(l *zap.Logger) ComposerOption {
	return func(c *Composer) {
		if l != nil {
			c.log = l
		}
	}
}

// Composer the order form. The mode is fixed at construction: NewComposer
// creates, NewEditComposer edits an existing order.
type Composer struct {
	mu sync.Mutex

	api   OrderAPI
	clock Clock
	log   *zap.Logger

	mode   Mode
	source *order.Order

	catalog *catalog.Catalog

	orderID    string
	customerID string
	name       string
	phone      string
	address    string
	deliveryAt time.Time
	feeText    string
	cart       *cart.Cart

	submitting bool
}

// NewComposer creates a composer in create mode. The delivery time starts
// at now.
func NewComposer(api OrderAPI, opts ...ComposerOption) *Composer {
	c := &Composer{
		api:   api,
		clock: time.Now,
		log:   logger.Named("composer"),
		mode:  ModeCreate,
		cart:  cart.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.deliveryAt = c.clock()
	return c
}

// NewEditComposer creates a composer in edit mode for o. The form is
// hydrated by Load, once the catalog is known; o should carry its line
// items (see OrderList.PrepareEdit).
func NewEditComposer(api OrderAPI, o *order.Order, opts ...ComposerOption) *Composer {
	c := NewComposer(api, opts...)
	c.mode = ModeEdit
	src := *o
	c.source = &src
	c.orderID = o.ID
	return c
}

// Mode returns the composer's mode
func (c *Composer) Mode() Mode {
	return c.mode
}

// Load fetches the product catalog. In edit mode it then hydrates the form
// from the order, joining its items against the catalog. A failed fetch
// still hydrates the form, with catalog fallbacks unavailable, and returns
// the error.
func (c *Composer) Load(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.Warn("product catalog unavailable", zap.Error(err))
	} else {
		c.catalog = catalog.New(products)
	}

	if c.mode == ModeEdit {
		c.hydrate()
	}
	return err
}

func (c *Composer) hydrate() {
	d := order.DraftFromOrder(c.source, c.catalog, c.clock())
	c.orderID = d.OrderID
	c.customerID = d.CustomerID
	c.name = d.CustomerName
	c.phone = d.Phone
	c.address = d.Address
	c.deliveryAt = d.DeliveryAt
	c.feeText = ""
	if !d.DeliveryFee.IsZero() {
		c.feeText = strings.Replace(d.DeliveryFee.Decimal().String(), ".", ",", 1)
	}
	c.cart.Restore(d.Lines)
}

// Products returns the loaded catalog
func (c *Composer) Products() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.Products()
}

// AddItem adds one unit of the catalog product with the given code
func (c *Composer) AddItem(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.catalog.Find(catalog.NormalizeKey(code))
	if !ok {
		return apperrors.Validation(msgProductNotFound)
	}
	c.cart.Add(p)
	return nil
}

// RemoveItem removes one unit of code; unknown codes are ignored
func (c *Composer) RemoveItem(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Remove(catalog.NormalizeKey(code))
}

// Lines returns the cart lines
func (c *Composer) Lines() []cart.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Lines()
}

func (c *Composer) SetCustomerName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

func (c *Composer) SetPhone(phone string) {
	c.mu.Lock()
	c.phone = phone
	c.mu.Unlock()
}

func (c *Composer) SetAddress(address string) {
	c.mu.Lock()
	c.address = address
	c.mu.Unlock()
}

func (c *Composer) SetDeliveryAt(t time.Time) {
	c.mu.Lock()
	c.deliveryAt = t
	c.mu.Unlock()
}

// SetDeliveryFee stores the fee as typed; it is parsed on use
func (c *Composer) SetDeliveryFee(text string) {
	c.mu.Lock()
	c.feeText = text
	c.mu.Unlock()
}

// DeliveryFeeText returns the fee as typed
func (c *Composer) DeliveryFeeText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feeText
}

// Draft returns a snapshot of the form
func (c *Composer) Draft() order.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftLocked()
}

func (c *Composer) draftLocked() order.Draft {
	return order.Draft{
		OrderID:      c.orderID,
		CustomerID:   c.customerID,
		CustomerName: c.name,
		Phone:        c.phone,
		Address:      c.address,
		DeliveryAt:   c.deliveryAt,
		DeliveryFee:  shared.ParseFee(c.feeText),
		Lines:        c.cart.Lines(),
	}
}

// Summary returns items total, fee and grand total
func (c *Composer) Summary() Summary {
	d := c.Draft()
	return Summary{
		ItemsTotal: d.ItemsTotal(),
		Fee:        d.DeliveryFee,
		Total:      d.Total(),
	}
}

// Validate checks the form without submitting it
func (c *Composer) Validate() error {
	if err := c.Draft().Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeValidation, msgIncomplete)
	}
	return nil
}

// Submit validates the form and sends it: CreateOrder in create mode,
// UpdateOrder in edit mode. An invalid form fails without a request. A
// second Submit while one is in flight is refused.
func (c *Composer) Submit(ctx context.Context) (*SubmitResult, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, apperrors.Conflict(msgSubmitting)
	}
	d := c.draftLocked()
	if err := d.Validate(); err != nil {
		c.mu.Unlock()
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, msgIncomplete)
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	verb := "cadastrar"
	done := "cadastrado"
	var (
		saved *order.Order
		err   error
	)
	if c.mode == ModeEdit {
		verb, done = "atualizar", "atualizado"
		saved, err = c.api.UpdateOrder(ctx, d.OrderID, d)
	} else {
		saved, err = c.api.CreateOrder(ctx, d)
	}

	if err != nil {
		c.log.Warn("order submission failed",
			zap.String("mode", c.mode.String()),
			zap.String("order_id", d.OrderID),
			zap.Error(err),
		)
		return nil, submitError(err, verb)
	}

	c.log.Info("order submitted",
		zap.String("mode", c.mode.String()),
		zap.String("order_id", d.OrderID),
	)
	return &SubmitResult{
		Order:   saved,
		Message: "Pedido " + done + " com sucesso!",
	}, nil
}

// submitError keeps the error's code and picks the message the form shows:
// connection failures get a fixed text, other failures the server's message
// or a generic one.
func submitError(err error, verb string) error {
	switch {
	case apperrors.Is(err, apperrors.CodeConnection):
		return apperrors.Wrap(err, apperrors.CodeConnection, "Não foi possível "+verb+" o pedido no servidor.")
	case apperrors.Is(err, apperrors.CodeValidation):
		return err
	default:
		appErr := apperrors.AsAppError(err)
		code := appErr.Code
		if code == apperrors.CodeInternal {
			code = apperrors.CodeBusiness
		}
		return apperrors.Wrap(err, code, apperrors.MessageOf(err, "Falha ao "+verb+" o pedido."))
	}
}
