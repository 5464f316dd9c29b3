package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
)

// CookieSigner wraps session ids in HS256 JWTs so a browser cannot present an id it was
// never given. A non-positive max age issues tokens without an expiry, matching sessions
// that live until the browser drops the cookie.
type CookieSigner struct {
	secret []byte
	maxAge time.Duration
}

func NewCookieSigner(secret string, maxAge time.Duration) *CookieSigner {
	return &CookieSigner{
		secret: []byte(secret),
		maxAge: maxAge,
	}
}

func (c *CookieSigner) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:       sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if c.maxAge > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.maxAge))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errs.Wrapf(err, "[session Sign]")
	}
	return signed, nil
}

// Verify returns the session id carried by a cookie value.
func (c *CookieSigner) Verify(value string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if c.maxAge > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		opts...,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrInvalidCookie, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: no session id", errs.ErrInvalidCookie)
	}
	return claims.ID, nil
}

// MaxAge is the cookie lifetime in seconds, or 0 for a browser-session cookie.
func (c *CookieSigner) MaxAge() int {
	if c.maxAge <= 0 {
		return 0
	}
	return int(c.maxAge.Seconds())
}
