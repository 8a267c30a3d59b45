package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/solestyle/shop-backend/internal/modules/auth"
	"github.com/solestyle/shop-backend/internal/modules/user"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(context.Context, string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (r *fakeUserRepo) Find(context.Context, string) ([]*user.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) UpdateProfile(context.Context, string, user.UpdateProfileRequest) error {
	return errors.New("not implemented")
}

func repoWith(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*user.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func parseClaims(t *testing.T, token, secret string) *auth.Claims {
	t.Helper()
	claims := &auth.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestIssueTokenForPasswordlessAccount(t *testing.T) {
	repo := repoWith(&user.User{Email: "a@example.com"})
	svc := auth.NewService(repo, testSecret, time.Hour, "ops@example.com")

	token, err := svc.IssueToken(context.Background(), "a@example.com", "")
	require.NoError(t, err)

	claims := parseClaims(t, token, testSecret)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.False(t, claims.Admin)
}

func TestIssueTokenVerifiesPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := repoWith(&user.User{Email: "a@example.com", PasswordHash: string(hash)})
	svc := auth.NewService(repo, testSecret, time.Hour, "")

	_, err = svc.IssueToken(context.Background(), "a@example.com", "wrong")
	assert.True(t, apierror.IsCode(err, apierror.ErrAuthentication))

	token, err := svc.IssueToken(context.Background(), "a@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", parseClaims(t, token, testSecret).Email)
}

func TestIssueTokenSetsAdminClaim(t *testing.T) {
	repo := repoWith(&user.User{Email: "ops@example.com"})
	svc := auth.NewService(repo, testSecret, time.Hour, "ops@example.com")

	token, err := svc.IssueToken(context.Background(), "ops@example.com", "")
	require.NoError(t, err)
	assert.True(t, parseClaims(t, token, testSecret).Admin)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc := auth.NewService(repoWith(), testSecret, time.Hour, "")
	_, err := svc.IssueToken(context.Background(), "ghost@example.com", "")
	assert.True(t, apierror.IsCode(err, apierror.ErrAuthentication))
}
