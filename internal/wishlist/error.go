package wishlist

import "errors"

var (
	ErrAlreadyInWishlist = errors.New("product is already in the wishlist")
	ErrItemNotFound      = errors.New("wishlist item not found")
	ErrInvalidInput      = errors.New("invalid wishlist input")
)
