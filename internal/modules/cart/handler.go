package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solestyle/shop-backend/internal/modules/auth"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Handler exposes cart HTTP endpoints. Every route requires a session.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *auth.Middleware) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(mw.RequireSession)
		r.Post("/", h.addItem)
		r.Post("/check", h.checkItem)
		r.Get("/", h.listItems)
		r.Get("/{id}", h.getItem)
		r.Patch("/{id}", h.updateQuantity)
		r.Delete("/{id}", h.removeItem)
	})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	identity, _ := auth.IdentityFromContext(r.Context())
	req.Email = identity.Email

	item, err := h.service.AddItem(r.Context(), req)
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) checkItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	exists, err := h.service.CheckItem(r.Context(), req.ID, req.Email)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "error checking cart"})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	email := r.URL.Query().Get("email")
	if email != identity.Email {
		respond(w, http.StatusForbidden, map[string]string{"message": "forbidden access"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	res, err := h.service.ListItems(r.Context(), email, page, limit)
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, res)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "removed"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
