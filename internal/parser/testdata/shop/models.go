package shop

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account in the system.
//
// It contains basic profile information.
type User struct {
	// ID is the unique identifier for the user
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email" validate:"required,email"`
	Name      string         `json:"name"`
	Age       int            `json:"age,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Tags      []string       `json:"tags"`
	Avatar    []byte         `json:"avatar"`
	Role      Role           `json:"role"`
	password  string
}

// Role represents a user role in the system.
type Role string

// Timestamps contains common timestamp fields.
type Timestamps struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Address represents a physical address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode,omitempty"`
}

// OrderStatus represents the status of an order.
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderShipped
	OrderDelivered
	orderLost
)

// Order represents a customer order.
type Order struct {
	Timestamps
	ID       uuid.UUID   `json:"id"`
	Status   OrderStatus `json:"status"`
	Items    []OrderItem `json:"items"`
	Shipping *Address    `json:"shipping,omitempty"`
	Total    float64     `json:"total"`
	Timeout  time.Duration
}

// OrderItem represents an item in an order.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// Sum returns the order total.
func (o *Order) Sum() float64 { return o.Total }

// ProductCategory is an alias for string.
type ProductCategory = string

// Page is one page of results.
type Page[T any] struct {
	Items []T
	Next  *string
}

// Catalog lists products.
type Catalog struct {
	Products Page[Product]
	Category ProductCategory
}

// Product represents a product in the catalog.
type Product struct {
	ID    uuid.UUID `json:"id"`
	Price float64   `json:"price"`
}

type internal struct {
	Value int
}
