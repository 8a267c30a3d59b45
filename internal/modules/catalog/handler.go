package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Handler exposes the public catalog endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	for _, col := range Collections {
		collection := string(col)
		r.Get("/"+collection, h.listProducts(collection))
		r.Get("/"+collection+"/{id}", h.getProduct(collection))
	}
	r.Get("/blogs", h.listBlogPosts)
}

func (h *Handler) listProducts(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.service.ListProducts(r.Context(), collection, queryFromRequest(r))
		if err != nil {
			respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusOK, res)
	}
}

func (h *Handler) getProduct(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.service.GetProduct(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			respond(w, apierror.MapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusOK, p)
	}
}

func (h *Handler) listBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListBlogPosts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, posts)
}

func queryFromRequest(r *http.Request) ListQuery {
	q := ListQuery{
		Type:      r.URL.Query().Get("type"),
		SortOrder: r.URL.Query().Get("sortOrder"),
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("minPrice"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("maxPrice"), 64); err == nil {
		q.MaxPrice = &v
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return q
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
