package wishlist

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL wishlist repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, email, product_id, name, price, image_url)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		item.ID, item.Email, item.ProductID, item.Name, item.Price, item.ImageURL)
	return err
}

func (r *postgresRepo) Exists(ctx context.Context, productID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE product_id = $1 AND email = $2)`,
		productID, email).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string, page, limit int) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, product_id, name, price, image_url, created_at
		FROM wishlist_items WHERE email = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		email, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.Email, &item.ProductID, &item.Name,
			&item.Price, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE email = $1`, email).Scan(&n)
	return n, err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE id = $1`, parsedID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}
