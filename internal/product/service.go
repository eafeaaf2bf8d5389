package product

import (
	"context"
	"fmt"
	"strings"

	"distributor-be/internal/logger"
	"distributor-be/internal/user"

	"go.uber.org/zap"
)

const (
	defaultReorderPoint = 50
	defaultImageURL     = "/images/placeholder.jpg"
)

type Service interface {
	List(ctx context.Context, role user.Role) ([]PricedProduct, error)
	Get(ctx context.Context, id uint, role user.Role) (*PricedProduct, error)
	Create(ctx context.Context, in NewProduct) (*Product, error)
	Update(ctx context.Context, id uint, in UpdateProduct) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, role user.Role) ([]PricedProduct, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, PriceFor(p, role))
	}

	return out, nil
}

func (s *service) Get(ctx context.Context, id uint, role user.Role) (*PricedProduct, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priced := PriceFor(p, role)
	return &priced, nil
}

func (s *service) Create(ctx context.Context, in NewProduct) (*Product, error) {
	if err := validateNewProduct(in); err != nil {
		return nil, err
	}

	p := &Product{
		SKU:              strings.TrimSpace(in.SKU),
		Name:             strings.TrimSpace(in.Name),
		Category:         in.Category,
		Brand:            in.Brand,
		BasePrice:        in.BasePrice,
		RetailerDiscount: in.RetailerDiscount,
		StockQuantity:    in.StockQuantity,
		ReorderPoint:     defaultReorderPoint,
		Description:      in.Description,
		ImageURL:         in.ImageURL,
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	if p.ImageURL == "" {
		p.ImageURL = defaultImageURL
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.Uint("product_id", p.ID),
		zap.String("sku", p.SKU))

	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, in UpdateProduct) (*Product, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product updated", zap.Uint("product_id", p.ID))

	return p, nil
}

func validateNewProduct(in NewProduct) error {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: sku and name are required", ErrInvalidInput)
	}
	if in.BasePrice < 0 {
		return fmt.Errorf("%w: base_price must not be negative", ErrInvalidInput)
	}
	if in.RetailerDiscount < 0 || in.RetailerDiscount > 1 {
		return fmt.Errorf("%w: retailer_discount must be between 0 and 1", ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity must not be negative", ErrInvalidInput)
	}
	if in.ReorderPoint != nil && *in.ReorderPoint < 0 {
		return fmt.Errorf("%w: reorder_point must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateUpdate(in UpdateProduct) error {
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		return fmt.Errorf("%w: sku must not be empty", ErrInvalidInput)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if in.BasePrice != nil && *in.BasePrice < 0 {
		return fmt.Errorf("%w: base_price must not be negative", ErrInvalidInput)
	}
	if in.RetailerDiscount != nil && (*in.RetailerDiscount < 0 || *in.RetailerDiscount > 1) {
		return fmt.Errorf("%w: retailer_discount must be between 0 and 1", ErrInvalidInput)
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity must not be negative", ErrInvalidInput)
	}
	if in.ReorderPoint != nil && *in.ReorderPoint < 0 {
		return fmt.Errorf("%w: reorder_point must not be negative", ErrInvalidInput)
	}
	return nil
}
