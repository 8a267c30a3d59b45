package cart

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL cart repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const itemColumns = `id, email, product_id, name, price, quantity, image_url, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, email, product_id, name, price, quantity, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		item.ID, item.Email, item.ProductID, item.Name, item.Price, item.Quantity, item.ImageURL)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	item := &Item{}
	err = r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items WHERE id = $1`, parsedID).
		Scan(&item.ID, &item.Email, &item.ProductID, &item.Name, &item.Price,
			&item.Quantity, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) Exists(ctx context.Context, productID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM cart_items WHERE product_id = $1 AND email = $2)`,
		productID, email).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string, page, limit int) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items WHERE email = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		email, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.Email, &item.ProductID, &item.Name, &item.Price,
			&item.Quantity, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE email = $1`, email).Scan(&n)
	return n, err
}

func (r *postgresRepo) TotalPriceByEmail(ctx context.Context, email string) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(price * quantity), 0) FROM cart_items WHERE email = $1`, email).Scan(&total)
	return total, err
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3`,
		quantity, time.Now(), parsedID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, parsedID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// DeleteByIDs is deliberately tolerant of already-deleted rows.
func (r *postgresRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = ANY($1)`, pq.Array(ids))
	return err
}
