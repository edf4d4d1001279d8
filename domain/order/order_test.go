package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestSortByDeliveryDesc(t *testing.T) {
	orders := []*Order{
		{ID: "1", DeliveryAt: day(2024, 1, 1)},
		{ID: "2", DeliveryAt: day(2024, 3, 1)},
		{ID: "3", DeliveryAt: day(2024, 2, 1)},
	}
	SortByDeliveryDesc(orders)

	assert.Equal(t, []string{"2", "3", "1"}, ids(orders))
}

func TestSortUnknownLastAndStable(t *testing.T) {
	orders := []*Order{
		{ID: "a"},
		{ID: "b", DeliveryAt: day(2024, 2, 1)},
		{ID: "c", DeliveryAt: day(2024, 2, 1)},
		{ID: "d"},
		{ID: "e", DeliveryAt: day(2024, 5, 1)},
	}
	SortByDeliveryDesc(orders)

	assert.Equal(t, []string{"e", "b", "c", "a", "d"}, ids(orders))
}

func TestStatusAt(t *testing.T) {
	now := day(2024, 6, 15)

	past := &Order{DeliveryAt: now.Add(-time.Hour)}
	future := &Order{DeliveryAt: now.Add(time.Hour)}
	exact := &Order{DeliveryAt: now}
	unknown := &Order{}

	assert.Equal(t, StatusDelivered, StatusAt(past, now))
	assert.Equal(t, StatusPending, StatusAt(future, now))
	assert.Equal(t, StatusDelivered, StatusAt(exact, now))
	assert.Equal(t, StatusPending, StatusAt(unknown, now))
	assert.Equal(t, "Entregue", StatusDelivered.Label())
}

func TestOrderTotals(t *testing.T) {
	o := &Order{
		DeliveryFee: shared.MustParseMoney("5,00"),
		Items: []LineItem{
			{ProductCode: "FILE", Quantity: 2, UnitPrice: shared.MustParseMoney("53.90")},
			{ProductCode: "TEMPERO", Quantity: 1, UnitPrice: shared.MustParseMoney("3.00")},
		},
	}
	assert.Equal(t, "R$ 110,80", o.ItemsTotal().FormatBRL())
	assert.Equal(t, "R$ 115,80", o.Total().FormatBRL())
	assert.True(t, o.HasItems())

	summary := &Order{DeliveryFee: shared.MustParseMoney("7")}
	assert.Equal(t, "R$ 7,00", summary.Total().FormatBRL())
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", FormatPhone("11987654321"))
	assert.Equal(t, "(11) 3456-7890", FormatPhone("11 3456-7890"))
	assert.Equal(t, "12345", FormatPhone("12345"))
	assert.Equal(t, "Telefone Não Informado", FormatPhone(""))
	assert.Equal(t, "11987654321", PhoneDigits("(11) 98765-4321"))
}

func ids(orders []*Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
