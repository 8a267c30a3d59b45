package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/solestyle/shop-backend/internal/modules/auth"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Service is the order/payment lifecycle manager.
type Service interface {
	// InitiateCheckout persists a pending order and returns the gateway
	// redirect URL. On gateway failure the pending record is kept and the
	// caller retries with a fresh transaction id.
	InitiateCheckout(ctx context.Context, identity auth.Identity, req CheckoutRequest) (*CheckoutResponse, error)

	// ConfirmPayment handles the gateway's success callback: integrity
	// check, mark success, reconcile the cart. Safe to replay.
	ConfirmPayment(ctx context.Context, payload CallbackPayload) (*Order, error)

	// DiscardPayment handles the failure and cancel callbacks: the pending
	// attempt is deleted and no cart items are touched. Settled orders are
	// left alone.
	DiscardPayment(ctx context.Context, tranID string) error

	ListOrders(ctx context.Context, email string) ([]*Order, error)
	GetOrder(ctx context.Context, tranID string) (*Order, error)
	DeleteOrder(ctx context.Context, identity auth.Identity, tranID string) error
	AdvanceFulfillment(ctx context.Context, tranID string) (*Order, error)

	// ExpireStalePending sweeps pending orders older than the TTL.
	ExpireStalePending(ctx context.Context, ttl time.Duration) (int64, error)
}

// Config carries the non-repository knobs of the lifecycle manager.
type Config struct {
	Currency string
	// PublicBaseURL is where the gateway posts its callbacks.
	PublicBaseURL string
	// CallbackSecret enables HMAC verification of callbacks when non-empty.
	CallbackSecret string
}

type service struct {
	repo    Repository
	cart    CartReconciler
	gateway Gateway
	cfg     Config
}

// NewService creates the lifecycle manager.
func NewService(repo Repository, cart CartReconciler, gateway Gateway, cfg Config) Service {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &service{repo: repo, cart: cart, gateway: gateway, cfg: cfg}
}

func (s *service) InitiateCheckout(ctx context.Context, identity auth.Identity, req CheckoutRequest) (*CheckoutResponse, error) {
	if req.Amount <= 0 {
		return nil, apierror.New(apierror.ErrBadRequest, "amount must be greater than 0", nil)
	}
	if len(req.LineItems) == 0 {
		return nil, apierror.New(apierror.ErrBadRequest, "checkout requires at least one cart item", nil)
	}

	name := req.CustomerName
	if name == "" {
		name = identity.Email
	}

	// A retried checkout always mints a new transaction id; pending records
	// from failed attempts are reaped by the stale-pending sweep.
	o := &Order{
		TransactionID:    uuid.NewString(),
		CustomerEmail:    identity.Email,
		CustomerName:     name,
		Amount:           req.Amount,
		Currency:         s.cfg.Currency,
		LineItems:        req.LineItems,
		DeliveryLocation: req.DeliveryLocation,
		Status:           StatusPending,
	}

	// Persist before contacting the gateway.
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "persist order", err.Error())
	}

	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	paymentURL, err := s.gateway.Initiate(ctx, &InitiationRequest{
		TransactionID: o.TransactionID,
		Amount:        o.Amount,
		Currency:      o.Currency,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		SuccessURL:    base + "/success-payment",
		FailURL:       base + "/failure",
		CancelURL:     base + "/cancel",
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"transaction_id": o.TransactionID,
			"customer":       o.CustomerEmail,
		}).WithError(err).Error("gateway initiation failed, order left pending")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": o.TransactionID,
		"amount":         o.Amount,
		"line_items":     len(o.LineItems),
	}).Info("checkout initiated")
	return &CheckoutResponse{TransactionID: o.TransactionID, PaymentURL: paymentURL}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, payload CallbackPayload) (*Order, error) {
	// Fail closed: only the canonical valid status is accepted.
	if payload.Status != ValidCallbackStatus {
		return nil, apierror.New(apierror.ErrIntegrityViolation, "unauthorized payment", payload.Status)
	}
	if err := s.verifySignature(payload); err != nil {
		return nil, err
	}

	o, err := s.repo.GetByTransactionID(ctx, payload.TransactionID)
	if err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "transaction not found", nil)
	}

	// Mark success before touching the cart: the cart deletion is idempotent,
	// so a crash between the two steps is repaired by replaying the callback.
	if o.Status != StatusSuccess {
		if err := s.repo.UpdateStatus(ctx, o.TransactionID, StatusSuccess); err != nil {
			return nil, apierror.New(apierror.ErrInternalServer, "update order status", err.Error())
		}
		o.Status = StatusSuccess
	}

	if err := s.cart.DeleteByIDs(ctx, o.LineItems); err != nil {
		// The order is already success; the next callback replay or the
		// cleanup sweep retries the orphaned deletion.
		logrus.WithField("transaction_id", o.TransactionID).
			WithError(err).Error("cart reconciliation failed after successful payment")
		return nil, apierror.New(apierror.ErrInternalServer, "reconcile cart", err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": o.TransactionID,
		"customer":       o.CustomerEmail,
	}).Info("payment confirmed")
	return o, nil
}

func (s *service) DiscardPayment(ctx context.Context, tranID string) error {
	// Only a pending attempt may be discarded. A late or replayed
	// failure/cancel callback against a settled order, or a cancel racing
	// a failure for the same transaction, sees not-found.
	if err := s.repo.DeletePending(ctx, tranID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierror.New(apierror.ErrNotFound, "no pending transaction", nil)
		}
		return apierror.New(apierror.ErrInternalServer, "discard order", err.Error())
	}
	logrus.WithField("transaction_id", tranID).Info("payment attempt discarded")
	return nil
}

func (s *service) ListOrders(ctx context.Context, email string) ([]*Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *service) GetOrder(ctx context.Context, tranID string) (*Order, error) {
	o, err := s.repo.GetByTransactionID(ctx, tranID)
	if err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "order not found", nil)
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, identity auth.Identity, tranID string) error {
	o, err := s.repo.GetByTransactionID(ctx, tranID)
	if err != nil {
		return apierror.New(apierror.ErrNotFound, "order not found", nil)
	}
	if o.CustomerEmail != identity.Email && !identity.Admin {
		return apierror.New(apierror.ErrAuthorization, "forbidden access", nil)
	}
	if err := s.repo.Delete(ctx, tranID); err != nil {
		return apierror.New(apierror.ErrInternalServer, "delete order", err.Error())
	}
	return nil
}

func (s *service) AdvanceFulfillment(ctx context.Context, tranID string) (*Order, error) {
	o, err := s.repo.GetByTransactionID(ctx, tranID)
	if err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "order not found", nil)
	}
	if o.Status != StatusSuccess {
		return nil, apierror.New(apierror.ErrConflict, "fulfillment applies to paid orders only", string(o.Status))
	}
	if o.FulfillmentStage >= StageDelivered {
		return nil, apierror.New(apierror.ErrConflict, "order already delivered", nil)
	}

	next := o.FulfillmentStage + 1
	if err := s.repo.UpdateFulfillmentStage(ctx, tranID, next); err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "update fulfillment stage", err.Error())
	}
	o.FulfillmentStage = next
	return o, nil
}

func (s *service) ExpireStalePending(ctx context.Context, ttl time.Duration) (int64, error) {
	n, err := s.repo.DeleteStalePending(ctx, time.Now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logrus.WithField("expired", n).Info("stale pending orders swept")
	}
	return n, nil
}

// verifySignature checks the HMAC the gateway attaches to callbacks. An empty
// configured secret preserves the legacy status-string-only behavior.
func (s *service) verifySignature(payload CallbackPayload) error {
	if s.cfg.CallbackSecret == "" {
		return nil
	}
	expected := SignCallback(s.cfg.CallbackSecret, payload.TransactionID, payload.Status)
	if payload.Signature == "" || !hmac.Equal([]byte(expected), []byte(payload.Signature)) {
		return apierror.New(apierror.ErrIntegrityViolation, "invalid callback signature", nil)
	}
	return nil
}

// SignCallback computes the hex HMAC-SHA256 over the callback's identifying
// fields. Exposed so the gateway-facing proxy and tests can produce it.
func SignCallback(secret, tranID, status string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(tranID + "|" + status))
	return hex.EncodeToString(mac.Sum(nil))
}
