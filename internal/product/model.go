package product

import "time"

// Product is the catalog row. BasePrice and RetailerDiscount are the
// admin-owned pricing inputs; what a caller actually sees is computed
// per request in pricing.go.
type Product struct {
	ID               uint      `json:"id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Brand            string    `json:"brand"`
	BasePrice        float64   `json:"base_price"`
	RetailerDiscount float64   `json:"retailer_discount"`
	StockQuantity    int       `json:"stock_quantity"`
	ReorderPoint     int       `json:"reorder_point"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProduct carries the fields an admin submits when creating a product.
type NewProduct struct {
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Brand            string  `json:"brand"`
	BasePrice        float64 `json:"base_price"`
	RetailerDiscount float64 `json:"retailer_discount"`
	StockQuantity    int     `json:"stock_quantity"`
	ReorderPoint     *int    `json:"reorder_point"`
	Description      string  `json:"description"`
	ImageURL         string  `json:"image_url"`
}

// UpdateProduct is a partial update. Nil fields are left untouched.
type UpdateProduct struct {
	SKU              *string  `json:"sku"`
	Name             *string  `json:"name"`
	Category         *string  `json:"category"`
	Brand            *string  `json:"brand"`
	BasePrice        *float64 `json:"base_price"`
	RetailerDiscount *float64 `json:"retailer_discount"`
	StockQuantity    *int     `json:"stock_quantity"`
	ReorderPoint     *int     `json:"reorder_point"`
	Description      *string  `json:"description"`
	ImageURL         *string  `json:"image_url"`
}
