package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/services"
	"storegate/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture(t *testing.T, backend http.HandlerFunc) (*Handler, services.CartService, string) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := repository.NewBackendClient(srv.URL, time.Second)
	require.NoError(t, err)
	orderRepo, err := repository.NewOrderRepository(client)
	require.NoError(t, err)
	ors := services.NewOrderService(orderRepo, state.NewEntityStore(func(o entities.Order) int { return o.Id }), nil)

	prodStore := state.NewEntityStore(func(p entities.Product) int { return p.Id })
	prodStore.Hydrate([]entities.Product{{Id: 1, Name: "Boots", Price: 20, Stock: 5}})
	crs := services.NewCartService(repository.NewMemoryCartRepository(), prodStore)

	cartId, err := crs.CreateCartSession()
	require.NoError(t, err)
	require.NoError(t, crs.AddItem(cartId, models.CartRequest{ProductId: 1, Quantity: 2}))

	h := NewHandler(HandlerParams{OrdService: ors, CrtService: crs})
	return h, crs, cartId
}

func checkoutRequest(cartId string) *http.Request {
	req := httptest.NewRequest("POST", "/cart/checkout", strings.NewReader(`{"paymentMethod":"COD","shippingAddress":"12 Main St"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: cartCookie, Value: cartId})
	return req
}

func TestCheckout_FailedPlacementKeepsCart(t *testing.T) {
	h, crs, cartId := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := httptest.NewRecorder()
	h.Checkout(rec, checkoutRequest(cartId))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	view, err := crs.GetCartView(cartId)
	require.NoError(t, err)
	assert.NotEmpty(t, view.Items, "cart must survive a failed order placement")
}

func TestCheckout_SuccessClearsCart(t *testing.T) {
	h, crs, cartId := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"order":{"id":9,"totalAmount":40,"paymentMethod":"COD"}}}`))
	})

	rec := httptest.NewRecorder()
	h.Checkout(rec, checkoutRequest(cartId))

	assert.Equal(t, http.StatusOK, rec.Code)

	view, err := crs.GetCartView(cartId)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
