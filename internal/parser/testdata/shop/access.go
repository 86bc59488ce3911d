package shop

// Permission is a set of access rights.
type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermWrite
	PermAdmin
)

// Closer releases resources.
type Closer interface {
	Close() error
}

// Store loads products.
type Store interface {
	Closer
	// Get returns one product.
	Get(id string) (*Product, error)
	List(limit int, tags ...string) ([]Product, error)
}

// Handler reacts to an order event.
type Handler func(order *Order, attempt int) bool
