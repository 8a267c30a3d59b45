package checkout

import (
	"time"
)

// Status is the payment lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Fulfillment stages, meaningful only once Status is success.
const (
	StagePlaced = iota
	StageProcessing
	StageShipped
	StageDelivered
)

// Order is the payment attempt record. TransactionID is the correlation key
// shared with the gateway; LineItems are the cart item IDs captured at
// initiation and never re-derived.
type Order struct {
	TransactionID    string    `json:"transaction_id"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerName     string    `json:"customer_name"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	LineItems        []string  `json:"line_items"`
	DeliveryLocation string    `json:"delivery_location"`
	Status           Status    `json:"status"`
	FulfillmentStage int       `json:"fulfillment_stage"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CheckoutRequest is the payload to start a payment.
type CheckoutRequest struct {
	Amount           float64  `json:"amount"`
	LineItems        []string `json:"line_items"`
	DeliveryLocation string   `json:"delivery_location"`
	CustomerName     string   `json:"customer_name,omitempty"`
}

// CheckoutResponse carries the hosted-checkout redirect URL back to the client.
type CheckoutResponse struct {
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
}

// CallbackPayload is what the gateway posts back to the callback routes.
type CallbackPayload struct {
	TransactionID string
	Status        string
	Signature     string
}

// InitiationRequest is the outbound request the gateway client sends.
type InitiationRequest struct {
	TransactionID string
	Amount        float64
	Currency      string
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	FailURL       string
	CancelURL     string
}
