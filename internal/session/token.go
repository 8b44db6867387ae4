package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "product-dashboard"

var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrInvalidIssuer = errors.New("invalid session issuer")
)

type claims struct {
	Username string `json:"username"`
	LoggedIn bool   `json:"logged_in"`
	jwt.RegisteredClaims
}

type tokenMaker struct {
	secret []byte
	now    func() time.Time
}

func (t *tokenMaker) issue(username string, ttl time.Duration) (string, error) {
	now := t.now()

	c := claims{
		Username: username,
		LoggedIn: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

func (t *tokenMaker) parse(raw string) (claims, error) {
	var c claims

	token, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || token == nil || !token.Valid {
		return claims{}, ErrInvalidToken
	}

	if c.Issuer != issuer {
		return claims{}, ErrInvalidIssuer
	}

	return c, nil
}
