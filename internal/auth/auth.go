package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Domenick1991/airtickets/internal/apperr"
)

// Claims are the fields embedded in a bearer credential.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates and mints HS256 bearer credentials against a
// process-wide secret. The secret is injected at construction, never read
// from ambient state.
type Verifier struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewVerifier(secret string, tokenTTL time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Parse verifies a raw credential and returns its claims. All failure modes
// map to an unauthenticated error; the message distinguishes missing,
// expired and malformed credentials.
func (v *Verifier) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return nil, apperr.New(apperr.KindUnauthenticated, "missing credential")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindUnauthenticated, "credential expired", err)
		}
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "invalid credential", err)
	}
	if !token.Valid {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid credential")
	}

	return claims, nil
}

// Sign mints a credential for the given identity. Used by ops tooling and
// tests; the login flow that would normally call this lives elsewhere.
func (v *Verifier) Sign(userID, email, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
