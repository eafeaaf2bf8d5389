package order

import "errors"

var (
	ErrEmptyCart         = errors.New("order must contain at least one item")
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("not allowed to access this order")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidInput      = errors.New("invalid order input")
)
