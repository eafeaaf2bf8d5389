package wishlist

import (
	"context"
	"fmt"

	"distributor-be/internal/product"
)

type Service interface {
	Add(ctx context.Context, userID, productID uint, desiredQty int) (*Item, error)
	Remove(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint) ([]Item, error)
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Add(ctx context.Context, userID, productID uint, desiredQty int) (*Item, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrInvalidInput)
	}
	if desiredQty < 0 {
		return nil, fmt.Errorf("%w: desired_quantity must not be negative", ErrInvalidInput)
	}
	if desiredQty == 0 {
		desiredQty = 1
	}

	// The product must exist before the pair is written; the summary
	// also feeds the response.
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := &Item{
		UserID:          userID,
		ProductID:       productID,
		DesiredQuantity: desiredQty,
		Product: ProductSummary{
			ID:               p.ID,
			SKU:              p.SKU,
			Name:             p.Name,
			Category:         p.Category,
			Brand:            p.Brand,
			BasePrice:        p.BasePrice,
			RetailerDiscount: p.RetailerDiscount,
			ImageURL:         p.ImageURL,
		},
	}

	if err := s.repo.Add(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *service) Remove(ctx context.Context, userID, productID uint) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID uint) ([]Item, error) {
	return s.repo.List(ctx, userID)
}
