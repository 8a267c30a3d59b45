package checkout

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/solestyle/shop-backend/internal/modules/auth"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Handler exposes the checkout and order HTTP endpoints.
type Handler struct {
	service       Service
	clientBaseURL string
}

func NewHandler(service Service, clientBaseURL string) *Handler {
	return &Handler{service: service, clientBaseURL: strings.TrimRight(clientBaseURL, "/")}
}

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *auth.Middleware) {
	r.With(mw.RequireSession).Post("/create-payment", h.createPayment)

	// Gateway callbacks: the gateway posts form-encoded bodies and the
	// shopper's browser follows the redirect we answer with.
	r.Post("/success-payment", h.successCallback)
	r.Post("/failure", h.discardCallback)
	r.Post("/cancel", h.discardCallback)

	r.Route("/order", func(r chi.Router) {
		r.With(mw.RequireSession).Get("/", h.listOrders)
		// Fetched by the post-redirect success page before the session
		// cookie round-trips, so it stays unauthenticated.
		r.Get("/{id}", h.getOrder)
		r.With(mw.RequireSession).Delete("/{id}", h.deleteOrder)
		r.With(mw.RequireSession, mw.RequireAdmin).Patch("/{id}", h.advanceFulfillment)
	})
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing session"})
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := h.service.InitiateCheckout(r.Context(), identity, req)
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, res)
}

func (h *Handler) successCallback(w http.ResponseWriter, r *http.Request) {
	payload, err := callbackFromForm(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.ConfirmPayment(r.Context(), payload)
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	http.Redirect(w, r, h.clientBaseURL+"/payment/success/"+o.TransactionID, http.StatusSeeOther)
}

func (h *Handler) discardCallback(w http.ResponseWriter, r *http.Request) {
	payload, err := callbackFromForm(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.service.DiscardPayment(r.Context(), payload.TransactionID); err != nil {
		// A replayed or raced callback lands here; the browser still
		// belongs back at the cart.
		if !apierror.IsCode(err, apierror.ErrNotFound) {
			respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
			return
		}
	}
	http.Redirect(w, r, h.clientBaseURL+"/cart", http.StatusSeeOther)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	orders, err := h.service.ListOrders(r.Context(), identity.Email)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	if err := h.service.DeleteOrder(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) advanceFulfillment(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.AdvanceFulfillment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func callbackFromForm(r *http.Request) (CallbackPayload, error) {
	if err := r.ParseForm(); err != nil {
		return CallbackPayload{}, err
	}
	return CallbackPayload{
		TransactionID: r.PostFormValue("tran_id"),
		Status:        r.PostFormValue("status"),
		Signature:     r.PostFormValue("verify_sign"),
	}, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
