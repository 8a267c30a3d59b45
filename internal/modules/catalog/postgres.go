package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const productColumns = `id, collection, name, type, price, description, image_url, created_at, updated_at`

func (r *postgresRepo) ListProducts(ctx context.Context, collection Collection, q ListQuery) (*ListResult, error) {
	where := `WHERE collection = $1`
	args := []interface{}{collection}

	if q.Type != "" {
		args = append(args, q.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		where += fmt.Sprintf(` AND price >= $%d`, len(args))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		where += fmt.Sprintf(` AND price <= $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	order := "DESC"
	if q.SortOrder == "asc" {
		order = "ASC"
	}
	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY price %s LIMIT $%d OFFSET $%d`,
		productColumns, where, order, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := &ListResult{TotalDocuments: total, Result: []*Product{}}
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Collection, &p.Name, &p.Type, &p.Price,
			&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res.Result = append(res.Result, p)
	}
	return res, rows.Err()
}

func (r *postgresRepo) GetProduct(ctx context.Context, collection Collection, id string) (*Product, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE collection = $1 AND id = $2`,
		collection, parsedID).Scan(&p.ID, &p.Collection, &p.Name, &p.Type, &p.Price,
		&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListBlogPosts(ctx context.Context) ([]*BlogPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, author, content, image_url, created_at FROM blog_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*BlogPost
	for rows.Next() {
		b := &BlogPost{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Content, &b.ImageURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, b)
	}
	return posts, rows.Err()
}
