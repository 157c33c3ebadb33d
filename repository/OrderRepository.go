package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"storegate/entities"
)

const adminOrderPath = "/api/admin/v1/order"

type orderStatusRequest struct {
	Status string `json:"status"`
}

type placeOrderRequest struct {
	PaymentMethod   string                 `json:"paymentMethod"`
	ShippingAddress string                 `json:"shippingAddress"`
	PhoneNumber     string                 `json:"phoneNumber"`
	OrderDetails    []entities.OrderDetail `json:"orderDetails"`
}

type OrderRepository interface {
	GetOrders(ctx context.Context) ([]entities.Order, error)
	GetOrderById(ctx context.Context, id int) (entities.Order, error)
	PlaceOrder(ctx context.Context, checkout entities.Order) (entities.Order, error)
	SetOrderStatus(ctx context.Context, id int, status string) (entities.Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

type OrderRepo struct {
	client *BackendClient
}

func NewOrderRepository(client *BackendClient) (OrderRepository, error) {
	if client == nil {
		return nil, errors.New("client must be non-nil")
	}
	return &OrderRepo{client: client}, nil
}

func (o *OrderRepo) GetOrders(ctx context.Context) (orders []entities.Order, err error) {
	body, status, err := o.client.Get(ctx, adminOrderPath)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("GetOrders: %v", err)
		return
	}
	err = DecodeList(body, "orders", &orders)
	if err != nil {
		log.Printf("GetOrders: %v", err)
	}
	return
}

func (o *OrderRepo) GetOrderById(ctx context.Context, id int) (order entities.Order, err error) {
	path := fmt.Sprintf("%s/%d", adminOrderPath, id)
	body, status, err := o.client.Get(ctx, path)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("GetOrderById: %v", err)
		return
	}
	err = DecodeItem(body, "order", &order)
	if err != nil {
		log.Printf("GetOrderById: %v", err)
	}
	return
}

func (o *OrderRepo) PlaceOrder(ctx context.Context, checkout entities.Order) (order entities.Order, err error) {
	req := placeOrderRequest{
		PaymentMethod:   checkout.PaymentMethod,
		ShippingAddress: checkout.ShippingAddress,
		PhoneNumber:     checkout.PhoneNumber,
		OrderDetails:    checkout.OrderDetails,
	}
	body, status, err := o.client.Send(ctx, http.MethodPost, adminOrderPath, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("PlaceOrder: %v", err)
		return
	}
	err = DecodeItem(body, "order", &order)
	if err != nil {
		log.Printf("PlaceOrder: %v", err)
	}
	return
}

func (o *OrderRepo) SetOrderStatus(ctx context.Context, id int, status string) (order entities.Order, err error) {
	path := fmt.Sprintf("%s/%d/status", adminOrderPath, id)
	body, code, err := o.client.Send(ctx, http.MethodPatch, path, orderStatusRequest{Status: status})
	if err != nil {
		return
	}
	if !isSuccess(code) {
		err = remoteError(code, body)
		log.Printf("SetOrderStatus: %v", err)
		return
	}
	err = DecodeItem(body, "order", &order)
	if err != nil {
		log.Printf("SetOrderStatus: %v", err)
	}
	return
}

func (o *OrderRepo) DeleteOrder(ctx context.Context, id int) (err error) {
	path := fmt.Sprintf("%s/%d", adminOrderPath, id)
	body, status, err := o.client.Send(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("DeleteOrder: %v", err)
		return
	}
	err = CheckEnvelope(body)
	if err != nil {
		log.Printf("DeleteOrder: %v", err)
	}
	return
}
