package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jathol7/oz-baby-toys-store/cart"
	"github.com/Jathol7/oz-baby-toys-store/models"
	"github.com/Jathol7/oz-baby-toys-store/storage"
)

type fakeOrderAPI struct {
	err      error
	received *models.PlaceOrderRequest
}

func (f *fakeOrderAPI) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (models.Order, error) {
	f.received = &req
	if f.err != nil {
		return models.Order{}, f.err
	}
	return models.Order{ID: 1, OrderRef: "remote-ref", Status: models.OrderStatusPending}, nil
}

func newFixture(api *fakeOrderAPI) (*Service, *cart.Store, storage.Store) {
	st := storage.NewMemory()
	c := cart.New(st)
	c.Add(models.Product{ID: 1, Name: "Teddy Bear", Price: 25.99}, 2)
	svc := NewService(api, c, NewLedger(st))
	return svc, c, st
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	api := &fakeOrderAPI{}
	svc, c, _ := newFixture(api)

	receipt, err := svc.Submit(context.Background(), models.CustomerInfo{FullName: "Pat"})
	require.NoError(t, err)
	assert.Equal(t, "remote-ref", receipt.OrderRef)
	assert.False(t, receipt.Local)
	assert.Zero(t, c.TotalItems())

	require.NotNil(t, api.received)
	assert.InDelta(t, 51.98, api.received.TotalAmount, 0.001)
	assert.Equal(t, "Pat", api.received.FullName)
	require.Len(t, api.received.Items, 1)
	assert.Equal(t, 2, api.received.Items[0].Quantity)
}

func TestSubmitMaskedFailureRecordsLocally(t *testing.T) {
	api := &fakeOrderAPI{err: errors.New("backend down")}
	svc, c, st := newFixture(api)

	receipt, err := svc.Submit(context.Background(), models.CustomerInfo{FullName: "Pat"})
	require.NoError(t, err, "masked policy reports success")
	assert.True(t, receipt.Local)
	assert.NotEmpty(t, receipt.OrderRef)
	assert.Zero(t, c.TotalItems(), "cart is cleared even though the remote call failed")

	ledger := NewLedger(st)
	orders := ledger.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, receipt.OrderRef, orders[0].OrderRef)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.InDelta(t, 51.98, orders[0].TotalAmount.Float64(), 0.001)
}

func TestSubmitStrictFailureKeepsCart(t *testing.T) {
	api := &fakeOrderAPI{err: errors.New("backend down")}
	svc, c, st := newFixture(api)
	svc.Policy = Policy{MaskFailures: false}

	_, err := svc.Submit(context.Background(), models.CustomerInfo{FullName: "Pat"})
	require.Error(t, err)
	assert.Equal(t, 2, c.TotalItems(), "cart must survive a strict failure")
	assert.Empty(t, NewLedger(st).Orders())
}

func TestSubmitEmptyCart(t *testing.T) {
	st := storage.NewMemory()
	svc := NewService(&fakeOrderAPI{}, cart.New(st), NewLedger(st))

	_, err := svc.Submit(context.Background(), models.CustomerInfo{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestLedgerAppends(t *testing.T) {
	st := storage.NewMemory()
	ledger := NewLedger(st)

	ref1 := ledger.Record(models.CustomerInfo{FullName: "A"}, []models.CartLine{
		{Product: models.Product{ID: 1, Name: "Teddy Bear", Price: 25.99}, Quantity: 1},
	}, 25.99)
	ref2 := ledger.Record(models.CustomerInfo{FullName: "B"}, nil, 0)

	orders := ledger.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, ref1, orders[0].OrderRef)
	assert.Equal(t, ref2, orders[1].OrderRef)
	assert.NotEqual(t, ref1, ref2)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, uint(1), orders[0].Items[0].ProductID)
}

func TestLedgerCorruptReadsEmpty(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(storage.KeyOrders, []byte("][")))
	assert.Empty(t, NewLedger(st).Orders())
}
