package shop

import "context"

// Ship marks the order as shipped.
func (o *Order) Ship(ctx context.Context, carrier string) error {
	return nil
}

// Split divides the order.
func (o *Order) Split(at int) (first, rest *Order, err error) {
	return nil, nil, nil
}

func (o *Order) validate() bool { return true }
