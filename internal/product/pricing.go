package product

import (
	"math"

	"distributor-be/internal/user"
)

// PricedProduct is a catalog row as seen by one caller. Price is the
// effective unit price for that caller's role. BasePrice and
// RetailerDiscount are only populated for admins.
type PricedProduct struct {
	ID               uint     `json:"id"`
	SKU              string   `json:"sku"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Brand            string   `json:"brand"`
	Price            float64  `json:"price"`
	BasePrice        *float64 `json:"base_price,omitempty"`
	RetailerDiscount *float64 `json:"retailer_discount,omitempty"`
	StockQuantity    int      `json:"stock_quantity"`
	ReorderPoint     int      `json:"reorder_point"`
	Description      string   `json:"description"`
	ImageURL         string   `json:"image_url"`
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// PriceFor projects a product for one role. Retailers get the
// discounted price, admins additionally see the raw pricing inputs,
// everyone else gets the base price. The projection is computed on
// every read so a discount change takes effect immediately.
func PriceFor(p *Product, role user.Role) PricedProduct {
	out := PricedProduct{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		Price:         round2(p.BasePrice),
		StockQuantity: p.StockQuantity,
		ReorderPoint:  p.ReorderPoint,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
	}

	switch role {
	case user.RoleRetailer:
		out.Price = round2(p.BasePrice * (1 - p.RetailerDiscount))
	case user.RoleAdmin:
		base := p.BasePrice
		discount := p.RetailerDiscount
		out.BasePrice = &base
		out.RetailerDiscount = &discount
	}

	return out
}
