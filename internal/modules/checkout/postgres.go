package checkout

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const orderColumns = `transaction_id, customer_email, customer_name, amount, currency,
	line_items, delivery_location, status, fulfillment_stage, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders
		  (transaction_id, customer_email, customer_name, amount, currency,
		   line_items, delivery_location, status, fulfillment_stage)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.TransactionID, o.CustomerEmail, o.CustomerName, o.Amount, o.Currency,
		pq.Array(o.LineItems), o.DeliveryLocation, o.Status, o.FulfillmentStage)
	return err
}

func (r *postgresRepo) GetByTransactionID(ctx context.Context, tranID string) (*Order, error) {
	return scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE transaction_id = $1`, tranID))
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.TransactionID, &o.CustomerEmail, &o.CustomerName,
			&o.Amount, &o.Currency, pq.Array(&o.LineItems), &o.DeliveryLocation,
			&o.Status, &o.FulfillmentStage, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, tranID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE transaction_id = $3`,
		status, time.Now(), tranID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *postgresRepo) UpdateFulfillmentStage(ctx context.Context, tranID string, stage int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET fulfillment_stage = $1, updated_at = $2 WHERE transaction_id = $3`,
		stage, time.Now(), tranID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, tranID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE transaction_id = $1`, tranID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// DeletePending gates the delete on status in the statement itself so a
// callback racing ConfirmPayment cannot erase a paid order.
func (r *postgresRepo) DeletePending(ctx context.Context, tranID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE transaction_id = $1 AND status = $2`,
		tranID, StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *postgresRepo) DeleteStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE status = $1 AND created_at < $2`,
		StatusPending, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	err := row.Scan(&o.TransactionID, &o.CustomerEmail, &o.CustomerName,
		&o.Amount, &o.Currency, pq.Array(&o.LineItems), &o.DeliveryLocation,
		&o.Status, &o.FulfillmentStage, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}
