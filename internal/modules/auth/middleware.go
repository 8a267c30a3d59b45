package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dgrijalva/jwt-go"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

type contextKey string

const identityKey contextKey = "identity"

// CookieName is the session cookie the client and the browser exchange.
const CookieName = "token"

// Middleware bundles the composable authorization predicates the routes chain.
type Middleware struct {
	secret []byte
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

// IdentityFromContext returns the caller identity set by RequireSession.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireSession verifies the session cookie and injects the caller identity.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			denied(w, apierror.New(apierror.ErrAuthentication, "missing session token", nil))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			denied(w, apierror.New(apierror.ErrAuthentication, "invalid session token", nil))
			return
		}

		identity := Identity{Email: claims.Email, Admin: claims.Admin}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers whose session is not the administrator.
// It must run after RequireSession.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			denied(w, apierror.New(apierror.ErrAuthentication, "missing session token", nil))
			return
		}
		if !identity.Admin {
			denied(w, apierror.New(apierror.ErrAuthorization, "administrator access required", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func denied(w http.ResponseWriter, err apierror.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apierror.MapErrorToHTTPStatus(err))
	json.NewEncoder(w).Encode(map[string]string{"error": err.Message})
}
