package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// ValidCallbackStatus is the sentinel the gateway reports for a genuinely
// completed payment. Anything else on the success route is rejected.
const ValidCallbackStatus = "VALID"

// Gateway is the hosted-checkout interface the lifecycle manager drives.
type Gateway interface {
	// Initiate registers the transaction with the gateway and returns the
	// URL the shopper's browser is forwarded to.
	Initiate(ctx context.Context, req *InitiationRequest) (paymentURL string, err error)
}

// sslcommerzGateway talks to the SSLCommerz hosted-checkout API.
type sslcommerzGateway struct {
	storeID       string
	storePassword string
	baseURL       string
	client        *http.Client
}

// NewSSLCommerzGateway builds the gateway client. The timeout bounds the
// single synchronous initiation call; there is no automatic retry, since a
// blind retry could double-charge.
func NewSSLCommerzGateway(storeID, storePassword, baseURL string, timeout time.Duration) Gateway {
	return &sslcommerzGateway{
		storeID:       storeID,
		storePassword: storePassword,
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        &http.Client{Timeout: timeout},
	}
}

type initiationResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (g *sslcommerzGateway) Initiate(ctx context.Context, req *InitiationRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", g.storeID)
	form.Set("store_passwd", g.storePassword)
	form.Set("tran_id", req.TransactionID)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)

	// The hosted checkout requires these fields even for digital carts; the
	// storefront has no shipping integration, so they are fixed placeholders.
	form.Set("shipping_method", "NO")
	form.Set("product_name", "cart purchase")
	form.Set("product_category", "general")
	form.Set("product_profile", "general")
	form.Set("cus_add1", "n/a")
	form.Set("cus_city", "n/a")
	form.Set("cus_country", "n/a")
	form.Set("cus_phone", "n/a")

	endpoint := g.baseURL + "/gw-process/v4/api.php"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", apierror.New(apierror.ErrInternalServer, "build gateway request", err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", apierror.New(apierror.ErrGatewayUnavailable, "payment gateway unreachable", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apierror.New(apierror.ErrGatewayUnavailable,
			fmt.Sprintf("payment gateway returned %d", resp.StatusCode), nil)
	}

	var body initiationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", apierror.New(apierror.ErrGatewayUnavailable, "malformed gateway response", err.Error())
	}
	if !strings.EqualFold(body.Status, "SUCCESS") || body.GatewayPageURL == "" {
		return "", apierror.New(apierror.ErrGatewayUnavailable, "gateway rejected initiation", body.FailedReason)
	}
	return body.GatewayPageURL, nil
}
