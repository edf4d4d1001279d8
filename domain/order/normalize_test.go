package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

func TestNormalizeNestedCustomer(t *testing.T) {
	o := Normalize(Record{
		ID:       "42",
		Customer: &Customer{ID: "7", Name: "Ana", Phone: "11987654321", Address: "Rua A, 1"},
	}, time.UTC)

	assert.Equal(t, "42", o.ID)
	assert.Equal(t, "7", o.CustomerID)
	assert.Equal(t, "Ana", o.CustomerName)
	assert.Equal(t, "11987654321", o.Phone)
	assert.Equal(t, "Rua A, 1", o.Address)
}

func TestNormalizeFallbackOrder(t *testing.T) {
	nested := &Customer{ID: "9", Name: "Nested", Phone: "000", Address: "Nested St"}

	tests := []struct {
		name     string
		record   Record
		wantName string
		wantID   string
	}{
		{"flat wins", Record{CustomerName: "Flat", Name: "Bare", CustomerID: "1", Customer: nested}, "Flat", "1"},
		{"bare nome next", Record{Name: "Bare", Customer: nested}, "Bare", "9"},
		{"nested last", Record{Customer: nested}, "Nested", "9"},
		{"blank skipped", Record{CustomerName: "  ", Customer: nested}, "Nested", "9"},
		{"nothing", Record{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Normalize(tt.record, time.UTC)
			assert.Equal(t, tt.wantName, o.CustomerName)
			assert.Equal(t, tt.wantID, o.CustomerID)
		})
	}

	o := Normalize(Record{Phone: "111", Customer: nested}, time.UTC)
	assert.Equal(t, "111", o.Phone)
	assert.Equal(t, "Nested St", o.Address)
}

func TestNormalizeDeliveryTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	o := Normalize(Record{DeliveryAt: "2024-03-01T09:30:00"}, loc)
	assert.True(t, time.Date(2024, 3, 1, 9, 30, 0, 0, loc).Equal(o.DeliveryAt))

	o = Normalize(Record{DeliveryAt: "amanhã"}, loc)
	assert.True(t, o.DeliveryAt.IsZero())
}

func TestDraftFromOrder(t *testing.T) {
	cat := catalog.New(catalog.Standard())
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	o := &Order{
		ID:           "15",
		CustomerID:   "3",
		CustomerName: "Ana",
		Phone:        "11987654321",
		Address:      "Rua A, 1",
		DeliveryFee:  shared.MustParseMoney("8,50"),
		Items: []LineItem{
			{ProductCode: "FILE", Quantity: 2, UnitPrice: shared.MustParseMoney("50.00"), Description: "Filé promocional"},
			{ProductCode: "TIRAS", Quantity: 1},
			{ProductCode: "SALMAO", Quantity: 1},
			{ProductCode: "COMBO", Quantity: 0},
		},
	}

	d := DraftFromOrder(o, cat, now)

	assert.True(t, d.IsUpdate())
	assert.Equal(t, "15", d.OrderID)
	assert.Equal(t, "3", d.CustomerID)
	assert.Equal(t, now, d.DeliveryAt, "missing delivery time falls back to now")
	assert.Equal(t, "8.50", d.DeliveryFee.String())

	require.Len(t, d.Lines, 3)
	assert.Equal(t, "Filé promocional", d.Lines[0].Description)
	assert.Equal(t, "50.00", d.Lines[0].UnitPrice.String())

	assert.Equal(t, "Filé de Tilápia em tiras", d.Lines[1].Description)
	assert.Equal(t, "24.90", d.Lines[1].UnitPrice.String())

	assert.Equal(t, UnknownItemDescription, d.Lines[2].Description)
	assert.True(t, d.Lines[2].UnitPrice.IsZero())

	assert.NoError(t, d.Validate())
}

func TestDraftFromOrderKeepsDeliveryTime(t *testing.T) {
	when := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	d := DraftFromOrder(&Order{ID: "1", DeliveryAt: when}, nil, time.Now())
	assert.Equal(t, when, d.DeliveryAt)
	assert.Empty(t, d.Lines)
}
