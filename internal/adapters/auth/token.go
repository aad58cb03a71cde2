package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventful/internal/domain"
)

type loginClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

type jwtAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator returns a TokenIssuer/TokenVerifier pair backed by
// HS256 JWTs signed with the given secret.
func NewJWTAuthenticator(secret string) (domain.TokenIssuer, domain.TokenVerifier) {
	a := &jwtAuthenticator{secret: []byte(secret)}
	return a, a
}

func (a *jwtAuthenticator) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := loginClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (a *jwtAuthenticator) Verify(token string) (*domain.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &loginClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*loginClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return &domain.AuthClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
