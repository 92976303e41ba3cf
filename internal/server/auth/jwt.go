package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs and verifies HS256 bearer tokens whose subject is a principal id.
// With a zero TTL tokens carry no expiry and stay valid while the key is unchanged.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(secretKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: secretKey, ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(principalID string) (string, error) {
	if principalID == "" {
		return "", fmt.Errorf("%w: empty principal id", common.ErrValidation)
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:  principalID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", common.ErrInternal, err)
	}

	return tokenString, nil
}

// Verify returns the principal id a valid token was issued for. Any failure
// (malformed, bad signature, other algorithm, expired, no subject) is
// reported as common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
