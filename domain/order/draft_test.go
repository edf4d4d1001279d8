package order

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keilahoriye/tilapiasuprememobile/domain/cart"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

func validDraft() Draft {
	return Draft{
		CustomerName: "Ana",
		Phone:        "11987654321",
		Address:      "Rua A, 1",
		DeliveryAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		DeliveryFee:  shared.MustParseMoney("5"),
		Lines: []cart.Line{
			{ProductCode: "FILE", Description: "Filé", UnitPrice: shared.MustParseMoney("53.90"), Quantity: 1},
		},
	}
}

func TestDraftValidate(t *testing.T) {
	require.NoError(t, validDraft().Validate())

	tests := map[string]func(d *Draft){
		"nome":        func(d *Draft) { d.CustomerName = "   " },
		"telefone":    func(d *Draft) { d.Phone = "" },
		"endereco":    func(d *Draft) { d.Address = "" },
		"dataEntrega": func(d *Draft) { d.DeliveryAt = time.Time{} },
		"itens":       func(d *Draft) { d.Lines = nil },
	}
	for field, mutate := range tests {
		t.Run(field, func(t *testing.T) {
			d := validDraft()
			mutate(&d)

			err := d.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteDraft)
			assert.Equal(t, "Preencha todos os dados e adicione itens ao pedido.", err.Error())

			var fe interface{ Field() string }
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, field, fe.Field())
		})
	}
}

func TestDraftTotals(t *testing.T) {
	d := validDraft()
	assert.False(t, d.IsUpdate())
	assert.Equal(t, "R$ 53,90", d.ItemsTotal().FormatBRL())
	assert.Equal(t, "R$ 58,90", d.Total().FormatBRL())
	assert.Equal(t, "Ana", d.Customer().Name)
}

func TestFilterCriteria(t *testing.T) {
	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.True(t, FilterCriteria{CustomerName: "  "}.IsEmpty())

	from := time.Date(2024, 2, 10, 15, 4, 5, 0, time.UTC)
	to := time.Date(2024, 2, 12, 8, 0, 0, 0, time.UTC)
	c := FilterCriteria{CustomerName: " Ana ", ProductKey: "file", DateFrom: &from, DateTo: &to}.Normalized()

	assert.False(t, c.IsEmpty())
	assert.Equal(t, "Ana", c.CustomerName)
	assert.Equal(t, "FILE", c.ProductKey)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), *c.DateFrom)
	assert.Equal(t, time.Date(2024, 2, 12, 23, 59, 59, 0, time.UTC), *c.DateTo)
	// source untouched
	assert.Equal(t, 15, from.Hour())
}
