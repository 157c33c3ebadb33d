package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"storegate/models"

	"github.com/redis/go-redis/v9"
)

// Cart holds the storefront selection before checkout: product id -> quantity.
type Cart struct {
	Items map[int]int `json:"items"`
}

type CartRepository interface {
	SetCart(cartId string, cart Cart) error
	GetCart(cartId string) (Cart, error)
	ClearCart(cartId string) error
}

type CartRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewCartRepository(redisConn *redis.Client, ctx context.Context) (CartRepository, error) {
	if redisConn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redisConn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CartRepo{rdb: redisConn, ctx: ctx}, nil
}

func (c *CartRepo) SetCart(cartId string, cart Cart) (err error) {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		log.Printf("SetCart: %v", err)
		return models.ErrServerError
	}
	err = c.rdb.Set(c.ctx, cartId, jsonData, 24*time.Hour).Err()
	if err != nil {
		log.Printf("SetCart: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CartRepo) GetCart(cartId string) (res Cart, err error) {
	res = Cart{Items: map[int]int{}}
	val, e := c.rdb.Get(c.ctx, cartId).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		log.Printf("GetCart: %v", e)
		err = models.ErrServerError
		return
	}
	if e := json.Unmarshal([]byte(val), &res); e != nil {
		log.Printf("GetCart: %v", e)
		err = models.ErrServerError
	}
	if res.Items == nil {
		res.Items = map[int]int{}
	}
	return
}

func (c *CartRepo) ClearCart(cartId string) (err error) {
	err = c.rdb.Del(c.ctx, cartId).Err()
	if err != nil {
		log.Printf("ClearCart: %v", err)
		err = models.ErrServerError
	}
	return
}

// MemoryCartRepo backs carts without redis, for single-node runs.
type MemoryCartRepo struct {
	mu    sync.Mutex
	carts map[string]Cart
}

func NewMemoryCartRepository() CartRepository {
	return &MemoryCartRepo{carts: map[string]Cart{}}
}

func (c *MemoryCartRepo) SetCart(cartId string, cart Cart) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.carts[cartId] = cart
	return nil
}

func (c *MemoryCartRepo) GetCart(cartId string) (Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart, ok := c.carts[cartId]
	if !ok || cart.Items == nil {
		return Cart{Items: map[int]int{}}, nil
	}
	copied := Cart{Items: make(map[int]int, len(cart.Items))}
	for id, qty := range cart.Items {
		copied.Items[id] = qty
	}
	return copied, nil
}

func (c *MemoryCartRepo) ClearCart(cartId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, cartId)
	return nil
}
