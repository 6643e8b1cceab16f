// Package token issues and verifies the signed bearer tokens used for
// account activation, password reset and sessions. Tokens are HS256 JWTs
// with the caller's payload tucked under a single "data" claim; nothing
// is stored server-side, validity is signature plus expiry only.
package token

import (
	"errors"
	"fmt"
	"time"

	"storefront-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries an arbitrary payload next to the standard JWT fields.
type Claims struct {
	Data map[string]interface{} `json:"data"`
	jwt.RegisteredClaims
}

// Issue signs the payload with the given secret and ttl and returns an
// opaque token string. A non-positive ttl produces an already-expired
// token, which is useful in tests.
func Issue(payload map[string]interface{}, secret string, ttl time.Duration) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload: %w", models.ErrTokenEncoding)
	}
	if secret == "" {
		return "", fmt.Errorf("empty secret: %w", models.ErrTokenEncoding)
	}

	now := time.Now()
	claims := &Claims{
		Data: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, checks the signature with the given secret and
// returns the embedded payload. Expired tokens yield models.ErrTokenExpired;
// anything else that fails to parse yields models.ErrTokenMalformed or
// models.ErrTokenInvalid.
func Verify(tokenString, secret string) (map[string]interface{}, error) {
	if tokenString == "" {
		return nil, models.ErrTokenMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, models.ErrTokenMalformed
		}
		return nil, models.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, models.ErrTokenInvalid
	}
	if len(claims.Data) == 0 {
		return nil, models.ErrTokenInvalid
	}
	return claims.Data, nil
}
