package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
	"github.com/matthews-wong/setaside-be/internal/modules/product"
	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `
	o.id, o.customer_id, o.status, o.total_amount, o.notes, o.pickup_time,
	o.prepared_by, o.created_at, o.updated_at,
	c.email, c.full_name, c.phone, c.role, c.is_active, c.created_at, c.updated_at,
	p.email, p.full_name, p.phone, p.role, p.is_active, p.created_at, p.updated_at`

const orderJoins = `
	FROM orders o
	JOIN users c ON c.id = o.customer_id
	LEFT JOIN users p ON p.id = o.prepared_by`

func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, total_amount, notes, pickup_time)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.CustomerID, o.Status, o.TotalAmount, o.Notes, o.PickupTime)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+orderColumns+orderJoins+` WHERE o.id=$1`, id)
	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.ListItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrders(ctx context.Context, f ListFilter) ([]*Order, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	if f.Status != "" {
		args = append(args, f.Status)
		where += " AND o.status = $" + strconv.Itoa(len(args))
	}
	if f.CustomerID != uuid.Nil {
		args = append(args, f.CustomerID)
		where += " AND o.customer_id = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT` + orderColumns + orderJoins + where + `
		ORDER BY o.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET notes=$1, pickup_time=$2, updated_at=$3 WHERE id=$4`,
		o.Notes, o.PickupTime, time.Now(), o.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, preparedBy uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, prepared_by=$2, updated_at=$3 WHERE id=$4`,
		status, preparedBy, time.Now(), id)
	return err
}

func (r *postgresRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	// Items go with the order via ON DELETE CASCADE.
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id)
	return err
}

const itemColumns = `
	i.id, i.order_id, i.product_id, i.quantity, i.unit_price, i.subtotal,
	i.special_instructions, i.created_at, i.updated_at,
	p.name, p.description, p.price, p.image_url, p.category, p.is_available,
	p.stock_quantity, p.created_by, p.created_at, p.updated_at`

const itemJoins = `
	FROM order_items i
	JOIN products p ON p.id = i.product_id`

func (r *postgresRepo) GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+itemColumns+itemJoins+` WHERE i.id=$1`, itemID)
	it, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "order item not found")
	}
	return it, err
}

func (r *postgresRepo) FindItemByProduct(ctx context.Context, orderID, productID uuid.UUID) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+itemColumns+itemJoins+` WHERE i.order_id=$1 AND i.product_id=$2`, orderID, productID)
	it, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return it, err
}

func (r *postgresRepo) InsertItem(ctx context.Context, it *Item) error {
	return r.withTotalRefresh(ctx, it.OrderID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_id, quantity, unit_price, subtotal, special_instructions)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal, it.SpecialInstructions)
		return err
	})
}

func (r *postgresRepo) UpdateItem(ctx context.Context, it *Item) error {
	return r.withTotalRefresh(ctx, it.OrderID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE order_items
			SET quantity=$1, subtotal=$2, special_instructions=$3, updated_at=$4
			WHERE id=$5`,
			it.Quantity, it.Subtotal, it.SpecialInstructions, time.Now(), it.ID)
		return err
	})
}

func (r *postgresRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	it, err := r.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	return r.withTotalRefresh(ctx, it.OrderID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE id=$1`, itemID)
		return err
	})
}

func (r *postgresRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT`+itemColumns+itemJoins+` WHERE i.order_id=$1 ORDER BY i.created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// withTotalRefresh runs an item mutation and the parent total recomputation
// in one transaction. The total is written from a single SQL aggregate so
// concurrent item edits cannot interleave a stale sum.
func (r *postgresRepo) withTotalRefresh(ctx context.Context, orderID uuid.UUID, mutate func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := mutate(tx); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET total_amount = (SELECT COALESCE(SUM(subtotal), 0) FROM order_items WHERE order_id=$1),
		    updated_at = $2
		WHERE id=$1`, orderID, time.Now())
	if err != nil {
		return fmt.Errorf("refresh order total: %w", err)
	}
	return tx.Commit()
}

// ── scan helpers ─────────────────────────────────────────────────────────────

func scanOrder(scan func(dest ...interface{}) error) (*Order, error) {
	o := &Order{}
	var notes sql.NullString
	var pickupTime sql.NullTime
	var preparedBy sql.NullString

	c := &user.User{}
	var customerPhone sql.NullString

	var prepEmail, prepName, prepPhone, prepRole sql.NullString
	var prepActive sql.NullBool
	var prepCreated, prepUpdated sql.NullTime

	err := scan(
		&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &notes, &pickupTime,
		&preparedBy, &o.CreatedAt, &o.UpdatedAt,
		&c.Email, &c.FullName, &customerPhone, &c.Role, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&prepEmail, &prepName, &prepPhone, &prepRole, &prepActive, &prepCreated, &prepUpdated,
	)
	if err != nil {
		return nil, err
	}

	o.Notes = notes.String
	if pickupTime.Valid {
		t := pickupTime.Time
		o.PickupTime = &t
	}
	c.ID = o.CustomerID
	c.Phone = customerPhone.String
	o.Customer = c

	if preparedBy.Valid {
		id, err := uuid.Parse(preparedBy.String)
		if err != nil {
			return nil, err
		}
		o.PreparedBy = &id
		o.Preparer = &user.User{
			ID:        id,
			Email:     prepEmail.String,
			FullName:  prepName.String,
			Phone:     prepPhone.String,
			Role:      authn.Role(prepRole.String),
			IsActive:  prepActive.Bool,
			CreatedAt: prepCreated.Time,
			UpdatedAt: prepUpdated.Time,
		}
	}
	return o, nil
}

func scanItem(scan func(dest ...interface{}) error) (*Item, error) {
	it := &Item{}
	var instructions sql.NullString
	p := &product.Product{}
	var description, imageURL, category sql.NullString
	var stock sql.NullInt64

	err := scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal,
		&instructions, &it.CreatedAt, &it.UpdatedAt,
		&p.Name, &description, &p.Price, &imageURL, &category, &p.IsAvailable,
		&stock, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	it.SpecialInstructions = instructions.String
	p.ID = it.ProductID
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.Category = category.String
	if stock.Valid {
		q := int(stock.Int64)
		p.StockQuantity = &q
	}
	it.Product = p
	return it, nil
}
