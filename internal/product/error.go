package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("a product with this SKU already exists")
	ErrInvalidInput    = errors.New("invalid product input")
)
