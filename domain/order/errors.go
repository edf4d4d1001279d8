package order

import (
	"errors"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

var (
	// ErrOrderNotFound order not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrMissingOrderID an operation on an existing order got an empty id
	ErrMissingOrderID = errors.New("order id is required")

	// ErrIncompleteDraft a required draft field is blank or the cart is empty
	ErrIncompleteDraft = errors.New("order draft is incomplete")

	// ErrUnknownProduct a line references a product code outside the catalog
	ErrUnknownProduct = errors.New("unknown product")
)

// NewOrderNotFoundError creates an order not found error with stack
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		entity:   "order",
		message:  "Pedido não encontrado com id: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewMissingOrderIDError creates a missing id error
func NewMissingOrderIDError() error {
	return &orderDomainError{
		sentinel: ErrMissingOrderID,
		entity:   "order",
		field:    "id",
		message:  "ID do pedido não fornecido.",
		stack:    shared.CaptureStack(3),
	}
}

// NewIncompleteDraftError creates a validation error naming the first
// missing field
func NewIncompleteDraftError(field string) error {
	return &orderDomainError{
		sentinel: ErrIncompleteDraft,
		entity:   "order",
		field:    field,
		message:  "Preencha todos os dados e adicione itens ao pedido.",
		stack:    shared.CaptureStack(3),
	}
}

// NewUnknownProductError creates an unknown product error
func NewUnknownProductError(code string) error {
	return &orderDomainError{
		sentinel: ErrUnknownProduct,
		entity:   "product",
		field:    "produto",
		message:  "Produto desconhecido: " + code,
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError order domain error carrying a stack
type orderDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Field returns the offending field, if any
func (e *orderDomainError) Field() string {
	return e.field
}

// Stack implements shared.Stacker
func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
