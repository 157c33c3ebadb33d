package entities

import "time"

const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCompleted  = "Completed"
	OrderCancelled  = "Cancelled"
)

const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"
)

type User struct {
	Id          int       `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	AvatarUrl   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Products    []Product `json:"products,omitempty"`
}

type CategoryRef struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	Id          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Stock       int          `json:"stock"`
	ImageUrl    string       `json:"imageUrl"`
	CategoryId  int          `json:"categoryId"`
	Category    *CategoryRef `json:"category,omitempty"`
}

type OrderDetail struct {
	ProductId int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	Id              int           `json:"id"`
	UserId          int           `json:"userId"`
	UserName        string        `json:"userName"`
	OrderDate       time.Time     `json:"orderDate"`
	Status          string        `json:"status"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentStatus   string        `json:"paymentStatus"`
	ShippingAddress string        `json:"shippingAddress"`
	PhoneNumber     string        `json:"phoneNumber"`
	OrderDetails    []OrderDetail `json:"orderDetails"`
}

// Session is the app-wide auth state every guard and handler reads.
// Durable storage mirrors it but is not the source of truth while running.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}

type CartItem struct {
	ProductId int     `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	SumPrice  float64 `json:"sumPrice"`
}

type CartView struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}
