package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	Add(ctx context.Context, item *Item) error
	Remove(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, item *Item) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO wishlist_items (user_id, product_id, desired_quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		item.UserID, item.ProductID, item.DesiredQuantity,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyInWishlist
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, userID, productID uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, userID uint) ([]Item, error) {
	query := `SELECT w.id, w.user_id, w.product_id, w.desired_quantity, w.created_at, p.id, p.sku, p.name, p.category, p.brand, p.base_price, p.retailer_discount, p.image_url FROM wishlist_items w JOIN products p ON p.id = w.product_id WHERE w.user_id = $1 ORDER BY w.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query wishlist for user %d: %w", userID, err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.DesiredQuantity, &item.CreatedAt,
			&item.Product.ID, &item.Product.SKU, &item.Product.Name,
			&item.Product.Category, &item.Product.Brand,
			&item.Product.BasePrice, &item.Product.RetailerDiscount,
			&item.Product.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist: %w", err)
	}

	return items, nil
}
