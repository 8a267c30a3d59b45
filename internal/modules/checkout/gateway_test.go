package checkout_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestyle/shop-backend/internal/modules/checkout"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

const gatewayBase = "https://sandbox.sslcommerz.test"

func newTestGateway() checkout.Gateway {
	return checkout.NewSSLCommerzGateway("teststore", "testpass", gatewayBase, 5*time.Second)
}

func initiationReq() *checkout.InitiationRequest {
	return &checkout.InitiationRequest{
		TransactionID: "tran-123",
		Amount:        59.99,
		Currency:      "USD",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		SuccessURL:    "https://api.example/success-payment",
		FailURL:       "https://api.example/failure",
		CancelURL:     "https://api.example/cancel",
	}
}

func TestGatewayInitiateReturnsRedirectURL(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var posted url.Values
	httpmock.RegisterResponder("POST", gatewayBase+"/gw-process/v4/api.php",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, req.ParseForm())
			posted = req.PostForm
			return httpmock.NewStringResponse(200,
				`{"status":"SUCCESS","GatewayPageURL":"https://sandbox.sslcommerz.test/pay/tran-123"}`), nil
		})

	paymentURL, err := newTestGateway().Initiate(context.Background(), initiationReq())
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.sslcommerz.test/pay/tran-123", paymentURL)

	assert.Equal(t, "teststore", posted.Get("store_id"))
	assert.Equal(t, "tran-123", posted.Get("tran_id"))
	assert.Equal(t, "59.99", posted.Get("total_amount"))
	assert.Equal(t, "USD", posted.Get("currency"))
	assert.Equal(t, "https://api.example/success-payment", posted.Get("success_url"))
	assert.Equal(t, "https://api.example/failure", posted.Get("fail_url"))
	assert.Equal(t, "https://api.example/cancel", posted.Get("cancel_url"))
}

func TestGatewayInitiateRejection(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", gatewayBase+"/gw-process/v4/api.php",
		httpmock.NewStringResponder(200,
			`{"status":"FAILED","failedreason":"store credential error"}`))

	_, err := newTestGateway().Initiate(context.Background(), initiationReq())
	assert.True(t, apierror.IsCode(err, apierror.ErrGatewayUnavailable))
}

func TestGatewayInitiateNon2xx(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", gatewayBase+"/gw-process/v4/api.php",
		httpmock.NewStringResponder(503, "unavailable"))

	_, err := newTestGateway().Initiate(context.Background(), initiationReq())
	assert.True(t, apierror.IsCode(err, apierror.ErrGatewayUnavailable))
}

func TestGatewayInitiateMalformedResponse(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", gatewayBase+"/gw-process/v4/api.php",
		httpmock.NewStringResponder(200, "<html>not json</html>"))

	_, err := newTestGateway().Initiate(context.Background(), initiationReq())
	assert.True(t, apierror.IsCode(err, apierror.ErrGatewayUnavailable))
}

func TestGatewayInitiateTransportError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	// No responder registered: the transport refuses the connection.

	_, err := newTestGateway().Initiate(context.Background(), initiationReq())
	assert.True(t, apierror.IsCode(err, apierror.ErrGatewayUnavailable))
}
