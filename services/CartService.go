package services

import (
	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"

	"github.com/google/uuid"
)

// CartService accumulates the storefront selection before checkout.
// Quantities are clamped to [1, stock] against the product store; stock
// itself is the backend's invariant, the clamp only keeps the UI honest.
type CartService struct {
	cr       repository.CartRepository
	products *state.EntityStore[entities.Product]
}

func NewCartService(cartRepo repository.CartRepository, products *state.EntityStore[entities.Product]) CartService {
	return CartService{
		cr:       cartRepo,
		products: products,
	}
}

func (cs *CartService) CreateCartSession() (cartId string, err error) {
	cartId = uuid.NewString()
	err = cs.cr.SetCart(cartId, repository.Cart{Items: map[int]int{}})
	return
}

func (cs *CartService) AddItem(cartId string, req models.CartRequest) (err error) {
	prod, ok := cs.products.Find(req.ProductId)
	if !ok {
		return models.NewRemoteError(models.ErrNotFound, "product not found")
	}
	if prod.Stock <= 0 {
		return models.NewRemoteError(models.ErrNotAllowed, "product is out of stock")
	}

	cart, err := cs.cr.GetCart(cartId)
	if err != nil {
		return
	}
	qty := cart.Items[req.ProductId] + req.Quantity
	if qty < 1 {
		qty = 1
	}
	if qty > prod.Stock {
		qty = prod.Stock
	}
	cart.Items[req.ProductId] = qty
	err = cs.cr.SetCart(cartId, cart)
	return
}

func (cs *CartService) RemoveItem(cartId string, req models.CartRequest) (err error) {
	cart, err := cs.cr.GetCart(cartId)
	if err != nil {
		return
	}
	if _, ok := cart.Items[req.ProductId]; !ok {
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if cart.Items[req.ProductId] > qty {
		cart.Items[req.ProductId] -= qty
	} else {
		delete(cart.Items, req.ProductId)
	}
	err = cs.cr.SetCart(cartId, cart)
	return
}

func (cs *CartService) GetCartView(cartId string) (view entities.CartView, err error) {
	view = entities.CartView{Items: []entities.CartItem{}}
	cart, err := cs.cr.GetCart(cartId)
	if err != nil {
		return
	}
	for prodId, qty := range cart.Items {
		prod, ok := cs.products.Find(prodId)
		if !ok {
			continue
		}
		item := entities.CartItem{
			ProductId: prodId,
			Name:      prod.Name,
			Quantity:  qty,
			Price:     prod.Price,
			SumPrice:  prod.Price * float64(qty),
		}
		view.Items = append(view.Items, item)
		view.TotalPrice += item.SumPrice
	}
	return
}

// Checkout turns the cart into an order payload. The selection stays in
// the cart until ClearCart; callers clear only once the order has been
// accepted upstream, so a failed placement loses nothing.
func (cs *CartService) Checkout(cartId string, req models.CheckoutRequest) (order entities.Order, err error) {
	view, err := cs.GetCartView(cartId)
	if err != nil {
		return
	}
	if len(view.Items) == 0 {
		err = models.NewRemoteError(models.ErrBadRequest, "cart is empty")
		return
	}
	order = entities.Order{
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		TotalAmount:     view.TotalPrice,
	}
	for _, item := range view.Items {
		order.OrderDetails = append(order.OrderDetails, entities.OrderDetail{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return
}

func (cs *CartService) ClearCart(cartId string) error {
	return cs.cr.ClearCart(cartId)
}
