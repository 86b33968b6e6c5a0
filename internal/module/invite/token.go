package invite

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies invite tokens. The token binds the invited
// email address; validation always re-checks it against the stored invite
// row, so the token alone grants nothing.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a token issuer with the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sign produces a signed token for the given email.
func (t *TokenIssuer) Sign(email string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrSigningFailed
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{Email: email})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return signed, nil
}

// Email verifies a token's signature and returns the email it was issued
// for.
func (t *TokenIssuer) Email(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Email, nil
}
