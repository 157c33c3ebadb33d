package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrServerError = errors.New("server error")
var ErrNotFound = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

// RemoteError carries the backend's human-readable message while still
// matching one of the sentinel errors above through errors.Is.
type RemoteError struct {
	Kind    error
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Kind
}

func NewRemoteError(kind error, message string) *RemoteError {
	if message == "" {
		message = kind.Error()
	}
	return &RemoteError{Kind: kind, Message: message}
}

// ValidationError is the registration failure shape: either a flat message
// or a field -> messages map, depending on what the backend sent back.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return strings.Join(parts, ", ")
}

type Credentials struct {
	Email    string `json:"email" schema:"email"`
	Password string `json:"password" schema:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email" schema:"email"`
	Password    string `json:"password" schema:"password"`
	FullName    string `json:"fullName" schema:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty" schema:"phoneNumber"`
}

type CategoryRequest struct {
	Name        string `json:"name" schema:"name"`
	Description string `json:"description" schema:"description"`
}

type ProductRequest struct {
	Name        string  `json:"name" schema:"name"`
	Description string  `json:"description" schema:"description"`
	Price       float64 `json:"price" schema:"price"`
	Stock       int     `json:"stock" schema:"stock"`
	ImageUrl    string  `json:"imageUrl" schema:"imageUrl"`
	CategoryId  int     `json:"categoryId" schema:"categoryId"`
}

type UserRequest struct {
	Email       string `json:"email" schema:"email"`
	FullName    string `json:"fullName" schema:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty" schema:"phoneNumber"`
	Role        string `json:"role" schema:"role"`
	Password    string `json:"password,omitempty" schema:"password"`
}

type CartRequest struct {
	ProductId int `json:"productId" schema:"productId"`
	Quantity  int `json:"quantity" schema:"quantity"`
}

type CheckoutRequest struct {
	PaymentMethod   string `json:"paymentMethod" schema:"paymentMethod"`
	ShippingAddress string `json:"shippingAddress" schema:"shippingAddress"`
	PhoneNumber     string `json:"phoneNumber" schema:"phoneNumber"`
}
