package auth

import (
	"context"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/solestyle/shop-backend/internal/modules/user"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Claims is the session token payload carried in the cookie.
type Claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.StandardClaims
}

type service struct {
	userRepo   user.Repository
	secret     []byte
	tokenTTL   time.Duration
	adminEmail string
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, secret string, tokenTTL time.Duration, adminEmail string) Service {
	return &service{
		userRepo:   userRepo,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		adminEmail: adminEmail,
	}
}

func (s *service) IssueToken(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apierror.New(apierror.ErrBadRequest, "email is required", nil)
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apierror.New(apierror.ErrAuthentication, "unknown user", nil)
	}

	// Accounts registered with a password must present it. Accounts created
	// through an external identity provider have no hash and are trusted on
	// email alone, as the original client flow expects.
	if u.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return "", apierror.New(apierror.ErrAuthentication, "invalid credentials", nil)
		}
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		Admin: s.adminEmail != "" && email == strings.ToLower(s.adminEmail),
		StandardClaims: jwt.StandardClaims{
			Subject:   email,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apierror.New(apierror.ErrInternalServer, "sign token", err.Error())
	}
	return signed, nil
}
