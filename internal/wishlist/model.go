package wishlist

import "time"

// ProductSummary is the denormalized catalog view attached to each
// wishlist row.
type ProductSummary struct {
	ID               uint    `json:"id"`
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Brand            string  `json:"brand"`
	BasePrice        float64 `json:"base_price"`
	RetailerDiscount float64 `json:"retailer_discount"`
	ImageURL         string  `json:"image_url"`
}

// Item is one (user, product) wishlist pair. The pair is unique per
// user; DesiredQuantity is a hint, not a reservation.
type Item struct {
	ID              uint           `json:"id"`
	UserID          uint           `json:"user_id"`
	ProductID       uint           `json:"product_id"`
	DesiredQuantity int            `json:"desired_quantity"`
	Product         ProductSummary `json:"product"`
	CreatedAt       time.Time      `json:"created_at"`
}
