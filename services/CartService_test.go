package services

import (
	"testing"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T, products ...entities.Product) (CartService, string) {
	t.Helper()
	store := state.NewEntityStore(func(p entities.Product) int { return p.Id })
	store.Hydrate(products)
	cs := NewCartService(repository.NewMemoryCartRepository(), store)
	cartId, err := cs.CreateCartSession()
	require.NoError(t, err)
	return cs, cartId
}

func TestCartService_QuantityClampedToStock(t *testing.T) {
	cs, cartId := newCartFixture(t, entities.Product{Id: 1, Name: "Boots", Price: 20, Stock: 3})

	require.NoError(t, cs.AddItem(cartId, models.CartRequest{ProductId: 1, Quantity: 10}))

	view, err := cs.GetCartView(cartId)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 60.0, view.TotalPrice)
}

func TestCartService_QuantityFloorIsOne(t *testing.T) {
	cs, cartId := newCartFixture(t, entities.Product{Id: 1, Stock: 5})

	require.NoError(t, cs.AddItem(cartId, models.CartRequest{ProductId: 1, Quantity: -4}))

	view, err := cs.GetCartView(cartId)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestCartService_OutOfStockRejected(t *testing.T) {
	cs, cartId := newCartFixture(t, entities.Product{Id: 1, Stock: 0})

	err := cs.AddItem(cartId, models.CartRequest{ProductId: 1, Quantity: 1})
	assert.Error(t, err)
}

func TestCartService_UnknownProductRejected(t *testing.T) {
	cs, cartId := newCartFixture(t)

	err := cs.AddItem(cartId, models.CartRequest{ProductId: 42, Quantity: 1})
	assert.Error(t, err)
}

func TestCartService_RemoveItemDrainsToDeletion(t *testing.T) {
	cs, cartId := newCartFixture(t, entities.Product{Id: 1, Stock: 5, Price: 2})

	require.NoError(t, cs.AddItem(cartId, models.CartRequest{ProductId: 1, Quantity: 2}))
	require.NoError(t, cs.RemoveItem(cartId, models.CartRequest{ProductId: 1, Quantity: 1}))

	view, err := cs.GetCartView(cartId)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	require.NoError(t, cs.RemoveItem(cartId, models.CartRequest{ProductId: 1, Quantity: 1}))
	view, err = cs.GetCartView(cartId)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_CheckoutBuildsOrder(t *testing.T) {
	cs, cartId := newCartFixture(t, entities.Product{Id: 1, Name: "Boots", Price: 20, Stock: 3})
	require.NoError(t, cs.AddItem(cartId, models.CartRequest{ProductId: 1, Quantity: 2}))

	order, err := cs.Checkout(cartId, models.CheckoutRequest{
		PaymentMethod:   "COD",
		ShippingAddress: "12 Main St",
		PhoneNumber:     "555-0100",
	})
	require.NoError(t, err)
	require.Len(t, order.OrderDetails, 1)
	assert.Equal(t, 2, order.OrderDetails[0].Quantity)
	assert.Equal(t, 20.0, order.OrderDetails[0].Price)
	assert.Equal(t, 40.0, order.TotalAmount)
	assert.Equal(t, "COD", order.PaymentMethod)

	// The selection survives until the order is accepted.
	view, err := cs.GetCartView(cartId)
	require.NoError(t, err)
	assert.NotEmpty(t, view.Items)

	require.NoError(t, cs.ClearCart(cartId))
	view, err = cs.GetCartView(cartId)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_CheckoutEmptyCartRejected(t *testing.T) {
	cs, cartId := newCartFixture(t)

	_, err := cs.Checkout(cartId, models.CheckoutRequest{})
	assert.Error(t, err)
}
