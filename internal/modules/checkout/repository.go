package checkout

import (
	"context"
	"time"
)

// Repository defines data access for payment orders.
type Repository interface {
	// Create persists a fresh pending order. The record must exist before
	// the gateway is contacted so a crash mid-initiation never loses the
	// correlation key.
	Create(ctx context.Context, o *Order) error

	GetByTransactionID(ctx context.Context, tranID string) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]*Order, error)
	UpdateStatus(ctx context.Context, tranID string, status Status) error
	UpdateFulfillmentStage(ctx context.Context, tranID string, stage int) error
	Delete(ctx context.Context, tranID string) error

	// DeletePending removes an order only while it is still pending,
	// reporting sql.ErrNoRows otherwise. A settled order must never be
	// destroyed by a failure or cancel callback.
	DeletePending(ctx context.Context, tranID string) error

	// DeleteStalePending discards pending orders created before the cutoff.
	// Orders in any other status are never touched.
	DeleteStalePending(ctx context.Context, olderThan time.Time) (int64, error)
}

// CartReconciler is the slice of the cart store the lifecycle manager needs:
// removing purchased line items by identifier set membership.
type CartReconciler interface {
	DeleteByIDs(ctx context.Context, ids []string) error
}
