package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id uint, in UpdateProduct) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, sku, name, category, brand, base_price, retailer_discount, stock_quantity, reorder_point, description, image_url, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Brand,
		&p.BasePrice, &p.RetailerDiscount,
		&p.StockQuantity, &p.ReorderPoint,
		&p.Description, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (sku, name, category, brand, base_price, retailer_discount,
			stock_quantity, reorder_point, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.SKU, p.Name, p.Category, p.Brand,
		p.BasePrice, p.RetailerDiscount,
		p.StockQuantity, p.ReorderPoint,
		p.Description, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translateUnique(err)
	}

	return nil
}

// Update builds a SET clause from the non-nil fields only, so a partial
// payload never clobbers columns the caller did not send.
func (r *repository) Update(ctx context.Context, id uint, in UpdateProduct) (*Product, error) {
	var (
		sets []string
		args []any
	)
	argIndex := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if in.SKU != nil {
		add("sku", *in.SKU)
	}
	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Brand != nil {
		add("brand", *in.Brand)
	}
	if in.BasePrice != nil {
		add("base_price", *in.BasePrice)
	}
	if in.RetailerDiscount != nil {
		add("retailer_discount", *in.RetailerDiscount)
	}
	if in.StockQuantity != nil {
		add("stock_quantity", *in.StockQuantity)
	}
	if in.ReorderPoint != nil {
		add("reorder_point", *in.ReorderPoint)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.ImageURL != nil {
		add("image_url", *in.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING `+productColumns,
		strings.Join(sets, ", "), argIndex)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, translateUnique(err)
	}

	return p, nil
}

func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrSKUExists
	}
	return fmt.Errorf("products write: %w", err)
}
