package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionTokenTTL is the fixed lifetime of issued session tokens. It is not
// configurable at issuance time.
const SessionTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for every decode failure. Tampering, structural
// corruption and expiry are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the subject identity inside a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and decodes signed session tokens.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec signing with the given symmetric secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue creates a signed token for the subject email, expiring after
// SessionTokenTTL.
func (c *TokenCodec) Issue(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies signature and expiry in one step and returns the claims.
// Any failure maps to ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
