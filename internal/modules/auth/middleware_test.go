package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestyle/shop-backend/internal/modules/auth"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, email string, admin bool, secret string, expires time.Time) string {
	t.Helper()
	claims := &auth.Claims{
		Email: email,
		Admin: admin,
		StandardClaims: jwt.StandardClaims{
			Subject:   email,
			ExpiresAt: expires.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identityEcho() (http.Handler, *auth.Identity) {
	captured := &auth.Identity{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := auth.IdentityFromContext(r.Context())
		*captured = id
		w.WriteHeader(http.StatusOK)
	}), captured
}

func TestRequireSessionInjectsIdentity(t *testing.T) {
	mw := auth.NewMiddleware(testSecret)
	next, captured := identityEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: signedToken(t, "a@example.com", false, testSecret, time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	mw.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@example.com", captured.Email)
	assert.False(t, captured.Admin)
}

func TestRequireSessionMissingCookie(t *testing.T) {
	mw := auth.NewMiddleware(testSecret)
	next, _ := identityEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsForgedToken(t *testing.T) {
	mw := auth.NewMiddleware(testSecret)
	next, _ := identityEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: signedToken(t, "a@example.com", true, "wrong-secret", time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	mw.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsExpiredToken(t *testing.T) {
	mw := auth.NewMiddleware(testSecret)
	next, _ := identityEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: signedToken(t, "a@example.com", false, testSecret, time.Now().Add(-time.Minute)),
	})
	rec := httptest.NewRecorder()
	mw.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := auth.NewMiddleware(testSecret)
	next, _ := identityEcho()
	protected := mw.RequireSession(mw.RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: signedToken(t, "a@example.com", false, testSecret, time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: signedToken(t, "ops@example.com", true, testSecret, time.Now().Add(time.Hour)),
	})
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
