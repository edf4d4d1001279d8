package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
}

func sampleOrders() []*order.Order {
	return []*order.Order{
		{ID: "1", CustomerName: "Ana", Phone: "11987654321", DeliveryAt: at(9, 10), DeliveryFee: shared.MustParseMoney("5"),
			Items: []order.LineItem{{ProductCode: "FILE", Quantity: 1, UnitPrice: shared.MustParseMoney("53.90")}}},
		{ID: "2", CustomerName: "", Phone: "", DeliveryAt: time.Time{}},
		{ID: "3", CustomerName: "Carla", Phone: "1133334444", DeliveryAt: at(11, 9)},
	}
}

func newTestList(api *fakeAPI, opts ...ListOption) *OrderList {
	opts = append([]ListOption{WithListClock(fixedClock), WithListLogger(zap.NewNop())}, opts...)
	return NewOrderList(api, opts...)
}

func TestOrderList_SearchSortsAndCounts(t *testing.T) {
	api := newFakeAPI()
	api.orders = sampleOrders()
	l := newTestList(api)

	require.NoError(t, l.Search(context.Background()))

	ids := []string{}
	for _, o := range l.Orders() {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)
	assert.Equal(t, 1, l.SearchCount())
	assert.Empty(t, l.Message())
	assert.False(t, l.Loading())

	require.NoError(t, l.Refresh(context.Background()))
	require.NoError(t, l.Focus(context.Background()))
	assert.Equal(t, 1, l.SearchCount())
	assert.Len(t, api.searchCalls(), 3)
}

func TestOrderList_Rows(t *testing.T) {
	api := newFakeAPI()
	api.orders = sampleOrders()
	l := newTestList(api)
	require.NoError(t, l.Refresh(context.Background()))

	rows := l.Rows()
	require.Len(t, rows, 3)

	// fixedNow is 10 March 14:00
	assert.Equal(t, order.StatusPending, rows[0].Status)
	assert.Equal(t, "Carla", rows[0].CustomerLabel)
	assert.Equal(t, "(11) 3333-4444", rows[0].PhoneLabel)
	assert.Equal(t, "11/03 09:00", rows[0].DeliveryLabel)

	assert.Equal(t, order.StatusDelivered, rows[1].Status)
	assert.Equal(t, "(11) 98765-4321", rows[1].PhoneLabel)
	assert.Equal(t, "58.90", rows[1].Total.String())

	assert.Equal(t, order.StatusPending, rows[2].Status)
	assert.Equal(t, "Cliente não informado", rows[2].CustomerLabel)
	assert.Equal(t, "Telefone Não Informado", rows[2].PhoneLabel)
	assert.Equal(t, "-", rows[2].DeliveryLabel)
}

func TestOrderList_Criteria(t *testing.T) {
	api := newFakeAPI()
	l := newTestList(api)

	from := time.Date(2025, 3, 1, 15, 20, 0, 0, time.UTC)
	to := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	l.SetCustomerName("  ana ")
	l.SetPhone(" 9876 ")
	l.SetProductKey("file")
	l.SetDateFrom(&from)
	l.SetDateTo(&to)

	require.NoError(t, l.Search(context.Background()))

	calls := api.searchCalls()
	require.Len(t, calls, 1)
	c := calls[0]
	assert.Equal(t, "ana", c.CustomerName)
	assert.Equal(t, "9876", c.Phone)
	assert.Equal(t, "FILE", c.ProductKey)
	require.NotNil(t, c.DateFrom)
	require.NotNil(t, c.DateTo)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *c.DateFrom)
	assert.Equal(t, time.Date(2025, 3, 5, 23, 59, 59, 0, time.UTC), *c.DateTo)

	// the filter keeps its own copy of the date
	from = from.AddDate(1, 0, 0)
	assert.Equal(t, 2025, l.Filters().DateFrom.Year())
}

func TestOrderList_ClearFilters(t *testing.T) {
	api := newFakeAPI()
	l := newTestList(api)
	l.SetCustomerName("ana")
	l.SetProductKey("COMBO")

	require.NoError(t, l.ClearFilters(context.Background()))

	assert.Equal(t, Filters{}, l.Filters())
	calls := api.searchCalls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsEmpty())
	assert.Equal(t, 1, l.SearchCount())
}

func TestOrderList_FailureKeepsPriorOrders(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	api := newFakeAPI()
	api.orders = sampleOrders()
	l := newTestList(api, WithListLogger(zap.New(core)))
	require.NoError(t, l.Refresh(context.Background()))
	require.Equal(t, 3, l.Len())

	api.mu.Lock()
	api.searchErr = apperrors.Connection(errors.New("timeout"), "Erro ao conectar com o servidor para buscar pedidos.")
	api.mu.Unlock()

	err := l.Search(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "Erro ao conectar com o servidor para buscar pedidos.", l.Message())
	assert.Equal(t, 1, logs.FilterMessage("order search failed").Len())

	api.mu.Lock()
	api.searchErr = nil
	api.mu.Unlock()
	require.NoError(t, l.Refresh(context.Background()))
	assert.Empty(t, l.Message())
}

// runOutOfOrder issues two searches whose responses arrive newest first.
func runOutOfOrder(t *testing.T, l *OrderList, api *fakeAPI) {
	t.Helper()
	first, second := make(chan struct{}), make(chan struct{})
	api.mu.Lock()
	api.holdNext = []chan struct{}{first, second}
	api.results = [][]*order.Order{
		{{ID: "old"}},
		{{ID: "new"}},
	}
	api.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Search(context.Background())
	}()
	require.Eventually(t, func() bool { return len(api.searchCalls()) == 1 }, time.Second, time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Search(context.Background())
	}()
	require.Eventually(t, func() bool { return len(api.searchCalls()) == 2 }, time.Second, time.Millisecond)
	assert.True(t, l.Loading())

	close(second)
	require.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return l.inFlight == 1
	}, time.Second, time.Millisecond)
	close(first)
	wg.Wait()
}

func TestOrderList_LastArrivalWins(t *testing.T) {
	api := newFakeAPI()
	l := newTestList(api)

	runOutOfOrder(t, l, api)

	orders := l.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "old", orders[0].ID)
}

func TestOrderList_DiscardStaleResponses(t *testing.T) {
	api := newFakeAPI()
	l := newTestList(api, WithDiscardStaleResponses(true))

	runOutOfOrder(t, l, api)

	orders := l.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "new", orders[0].ID)
	assert.False(t, l.Loading())
}

func TestOrderList_CloseDropsResponses(t *testing.T) {
	api := newFakeAPI()
	api.orders = sampleOrders()
	hold := make(chan struct{})
	api.holdNext = []chan struct{}{hold}
	l := newTestList(api)

	done := make(chan error, 1)
	go func() { done <- l.Search(context.Background()) }()
	require.Eventually(t, func() bool { return len(api.searchCalls()) == 1 }, time.Second, time.Millisecond)

	l.Close()
	close(hold)
	require.NoError(t, <-done)
	assert.Zero(t, l.Len())

	// no request after close
	require.NoError(t, l.Refresh(context.Background()))
	assert.Len(t, api.searchCalls(), 1)
}

func TestOrderList_Details(t *testing.T) {
	api := newFakeAPI()
	api.items["1"] = []order.LineItem{{ProductCode: "FILE", Quantity: 2}}
	l := newTestList(api)

	items, err := l.Details(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	api.itemsErr = apperrors.Business("Erro ao carregar itens.")
	_, err = l.Details(context.Background(), "1")
	require.Error(t, err)
}

func TestOrderList_PrepareEdit(t *testing.T) {
	api := newFakeAPI()
	api.items["1"] = []order.LineItem{{ProductCode: "TIRAS", Quantity: 3}}
	l := newTestList(api)
	src := sampleOrders()[0]

	edit, err := l.PrepareEdit(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, edit.Items, 1)
	assert.Equal(t, "TIRAS", edit.Items[0].ProductCode)
	// the source is untouched
	assert.Equal(t, "FILE", src.Items[0].ProductCode)

	api.itemsErr = apperrors.Connection(errors.New("eof"), "Erro ao carregar itens.")
	_, err = l.PrepareEdit(context.Background(), src)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConnection))
	assert.Equal(t, "Não foi possível carregar os itens para edição.", apperrors.MessageOf(err, ""))
}

func TestOrderList_Delete(t *testing.T) {
	api := newFakeAPI()
	api.orders = sampleOrders()
	l := newTestList(api)
	require.NoError(t, l.Refresh(context.Background()))

	api.deleteErr = apperrors.Business("Falha ao excluir o pedido.")
	_, err := l.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, 3, l.Len())

	api.deleteErr = nil
	msg, err := l.Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Pedido deletado com sucesso!", msg)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"1"}, api.deleted)
}
