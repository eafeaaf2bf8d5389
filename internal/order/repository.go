package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"distributor-be/internal/product"

	"github.com/lib/pq"
)

type Repository interface {
	// PlaceOrder persists the order, its items and the matching stock
	// decrements as one transaction. On return o carries the assigned
	// ids and timestamps.
	PlaceOrder(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `o.id, o.user_id, o.payment_method, o.pay_result_id, o.pay_result_status, o.pay_result_update_time, o.pay_result_email, o.ship_address, o.ship_city, o.ship_postal_code, o.ship_country, o.items_price, o.tax_price, o.shipping_price, o.total_price, o.status, o.created_at, o.updated_at`

func (r *repository) PlaceOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	var payID, payStatus, payUpdate, payEmail sql.NullString
	if o.PaymentResult != nil {
		payID = nullable(o.PaymentResult.ID)
		payStatus = nullable(o.PaymentResult.Status)
		payUpdate = nullable(o.PaymentResult.UpdateTime)
		payEmail = nullable(o.PaymentResult.EmailAddress)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, payment_method, pay_result_id, pay_result_status,
			pay_result_update_time, pay_result_email, ship_address, ship_city,
			ship_postal_code, ship_country, items_price, tax_price, shipping_price,
			total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		o.UserID, o.PaymentMethod, payID, payStatus, payUpdate, payEmail,
		o.ShippingAddress.Address, o.ShippingAddress.City,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
		o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			o.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.ImageURL,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		if err := decrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	return nil
}

// decrementStock is a floor-guarded conditional update. Zero rows
// affected means either the product is gone or the guard failed; the
// follow-up existence check tells the two apart so the caller can map
// them to different errors.
func decrementStock(ctx context.Context, tx *sql.Tx, productID uint, qty int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW() WHERE id = $2 AND stock_quantity >= $1`,
		qty, productID)
	if err != nil {
		return fmt.Errorf("decrement stock for product %d: %w", productID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock for product %d: %w", productID, err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product %d: %w", productID, err)
	}
	if !exists {
		return fmt.Errorf("product %d: %w", productID, product.ErrProductNotFound)
	}

	return fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	query := `SELECT ` + orderColumns + `, u.name, u.email, u.role FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = $1`

	o, err := scanOrderWithOwner(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order %d: %w", id, err)
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	query := `SELECT ` + orderColumns + `, u.name, u.email, u.role FROM orders o JOIN users u ON u.id = o.user_id ORDER BY o.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrderWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 ORDER BY o.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// attachItems loads the items for every order in one query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uint]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, int64(o.ID))
		o.Items = []Item{}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, name, quantity, unit_price, image_url FROM order_items WHERE order_id = ANY($1) ORDER BY id`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item    Item
			orderID uint
		)
		err := rows.Scan(&item.ID, &orderID, &item.ProductID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.ImageURL)
		if err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o                                    Order
		payID, payStatus, payUpdate, payMail sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.PaymentMethod,
		&payID, &payStatus, &payUpdate, &payMail,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	setPaymentResult(&o, payID, payStatus, payUpdate, payMail)
	return &o, nil
}

func scanOrderWithOwner(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o                                    Order
		owner                                OwnerSummary
		payID, payStatus, payUpdate, payMail sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.PaymentMethod,
		&payID, &payStatus, &payUpdate, &payMail,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
		&owner.Name, &owner.Email, &owner.Role,
	)
	if err != nil {
		return nil, err
	}

	owner.ID = o.UserID
	o.Owner = &owner
	setPaymentResult(&o, payID, payStatus, payUpdate, payMail)
	return &o, nil
}

func setPaymentResult(o *Order, id, status, update, email sql.NullString) {
	if !id.Valid && !status.Valid && !update.Valid && !email.Valid {
		return
	}
	o.PaymentResult = &PaymentResult{
		ID:           id.String,
		Status:       status.String,
		UpdateTime:   update.String,
		EmailAddress: email.String,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
