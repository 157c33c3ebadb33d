package services

import (
	"context"
	"log"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"
)

const orderSnapshot = "orders"

var orderStatuses = map[string]bool{
	entities.OrderPending:    true,
	entities.OrderProcessing: true,
	entities.OrderShipped:    true,
	entities.OrderDelivered:  true,
	entities.OrderCompleted:  true,
	entities.OrderCancelled:  true,
}

type OrderService struct {
	or    repository.OrderRepository
	store *state.EntityStore[entities.Order]
	snap  repository.SnapshotRepository
}

func NewOrderService(orderRepo repository.OrderRepository, store *state.EntityStore[entities.Order], snap repository.SnapshotRepository) OrderService {
	return OrderService{
		or:    orderRepo,
		store: store,
		snap:  snap,
	}
}

func (os *OrderService) Store() *state.EntityStore[entities.Order] {
	return os.store
}

func (os *OrderService) Hydrate() {
	if os.snap == nil {
		return
	}
	var orders []entities.Order
	ok, err := os.snap.LoadSnapshot(orderSnapshot, &orders)
	if err != nil || !ok {
		return
	}
	os.store.Hydrate(orders)
}

func (os *OrderService) FetchOrders(ctx context.Context) (orders []entities.Order, err error) {
	token := os.store.Start()
	orders, err = os.or.GetOrders(ctx)
	if err != nil {
		os.store.Failed(token, err.Error())
		return nil, err
	}
	if os.store.Succeeded(token, orders) && os.snap != nil {
		if e := os.snap.SaveSnapshot(orderSnapshot, orders); e != nil {
			log.Printf("FetchOrders: %v", e)
		}
	}
	return orders, nil
}

func (os *OrderService) FetchOrderById(ctx context.Context, id int) (order entities.Order, err error) {
	order, err = os.or.GetOrderById(ctx, id)
	if err != nil {
		return
	}
	os.store.Select(order)
	return
}

func (os *OrderService) UpdateOrderStatus(ctx context.Context, id int, status string) (order entities.Order, err error) {
	if !orderStatuses[status] {
		err = models.NewRemoteError(models.ErrBadRequest, "status is wrong")
		return
	}
	order, err = os.or.SetOrderStatus(ctx, id, status)
	if err != nil {
		return
	}
	os.store.Updated(order)
	return
}

func (os *OrderService) DeleteOrder(ctx context.Context, id int) (err error) {
	err = os.or.DeleteOrder(ctx, id)
	if err != nil {
		return
	}
	os.store.Removed(id)
	return
}

// PlaceOrder submits a checkout built by CartService and records the
// created order locally. Callers re-fetch the list when they need derived
// aggregates refreshed; the backend pushes no invalidation events.
func (os *OrderService) PlaceOrder(ctx context.Context, checkout entities.Order) (order entities.Order, err error) {
	if len(checkout.OrderDetails) == 0 {
		err = models.NewRemoteError(models.ErrBadRequest, "order has no items")
		return
	}
	order, err = os.or.PlaceOrder(ctx, checkout)
	if err != nil {
		return
	}
	os.store.Created(order)
	return
}
