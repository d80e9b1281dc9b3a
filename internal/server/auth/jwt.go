// Package auth mints and verifies the tokens used by the identity provider:
// HS256 access tokens issued by the server and federated ID tokens issued by
// an external provider sharing a secret with it.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken validates an access token. An expired token yields
// common.ErrTokenExpired so the client knows to refresh; anything else that
// fails verification yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}

// FederatedClaims is what a federated ID token asserts about its holder.
type FederatedClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ParseFederatedToken verifies an ID token signed with the federation secret.
// The subject and email claims are mandatory.
func ParseFederatedToken(tokenString string, secretKey []byte) (*FederatedClaims, error) {
	claims := &FederatedClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// GenerateFederatedToken signs an ID token the way a provider would. The
// server never calls it; it backs tests and the dev tooling of the CLI.
func GenerateFederatedToken(subject, email, name string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, FederatedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
		Name:  name,
	})
	return token.SignedString(secretKey)
}

func parse(tokenString string, claims jwt.Claims, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case err != nil:
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	case !token.Valid:
		return common.ErrInvalidToken
	}
	return nil
}
