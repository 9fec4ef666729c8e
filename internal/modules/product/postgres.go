package product

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/matthews-wong/setaside-be/internal/apperr"
)

const foreignKeyViolation = "23503"

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, description, price, image_url, category, is_available, stock_quantity, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category,
		p.IsAvailable, p.StockQuantity, p.CreatedBy)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, image_url, category, is_available,
		       stock_quantity, created_by, created_at, updated_at
		FROM products WHERE id=$1`, id))
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*Product, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	if f.Category != "" {
		args = append(args, f.Category)
		where += " AND category = $" + strconv.Itoa(len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += " AND name ILIKE $" + strconv.Itoa(len(args))
	}
	if f.AvailableOnly {
		where += " AND is_available = true"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	query := `
		SELECT id, name, description, price, image_url, category, is_available,
		       stock_quantity, created_by, created_at, updated_at
		FROM products` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, image_url=$4, category=$5,
		    is_available=$6, stock_quantity=$7, updated_at=$8
		WHERE id=$9`,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category,
		p.IsAvailable, p.StockQuantity, time.Now(), p.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
		return apperr.New(apperr.KindInvalidState, "product is referenced by existing orders")
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.KindNotFound, "product not found")
	}
	return nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM products
		WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanProduct(row *sql.Row) (*Product, error) {
	p := &Product{}
	var description, imageURL, category sql.NullString
	var stock sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &imageURL, &category,
		&p.IsAvailable, &stock, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "product not found")
	}
	if err != nil {
		return nil, err
	}
	fillNullable(p, description, imageURL, category, stock)
	return p, nil
}

func scanProductRow(rows *sql.Rows) (*Product, error) {
	p := &Product{}
	var description, imageURL, category sql.NullString
	var stock sql.NullInt64
	if err := rows.Scan(&p.ID, &p.Name, &description, &p.Price, &imageURL, &category,
		&p.IsAvailable, &stock, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	fillNullable(p, description, imageURL, category, stock)
	return p, nil
}

func fillNullable(p *Product, description, imageURL, category sql.NullString, stock sql.NullInt64) {
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.Category = category.String
	if stock.Valid {
		q := int(stock.Int64)
		p.StockQuantity = &q
	}
}
