package order

import (
	"context"
	"errors"
	"fmt"

	"distributor-be/internal/logger"
	"distributor-be/internal/metrics"
	"distributor-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error)
	Get(ctx context.Context, id, requesterID uint, role user.Role) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListMine(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Place(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error) {
	timer := metrics.StartTimer()

	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("%w: item product_id is required", ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrInvalidInput)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item unit_price must not be negative", ErrInvalidInput)
		}
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			ImageURL:  line.ImageURL,
		})
	}

	o := &Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentResult:   in.PaymentResult,
		ItemsPrice:      in.ItemsPrice,
		TaxPrice:        in.TaxPrice,
		ShippingPrice:   in.ShippingPrice,
		TotalPrice:      in.TotalPrice,
		Status:          StatusPending,
	}

	if err := s.repo.PlaceOrder(ctx, o); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			metrics.StockRejections.Inc()
		}
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	logger.FromCtx(ctx).Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.Uint("user_id", userID),
		zap.Int("items", len(o.Items)),
		zap.Float64("total", o.TotalPrice),
		zap.Duration("elapsed", timer.Duration()))

	return o, nil
}

func (s *service) Get(ctx context.Context, id, requesterID uint, role user.Role) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.UserID != requesterID && role != user.RoleAdmin {
		return nil, ErrForbidden
	}

	return o, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (*Order, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Uint("order_id", id),
		zap.String("status", string(parsed)))

	return s.repo.GetByID(ctx, id)
}
