package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Claims is the identity carried by a session token.  Only public identity
// attributes go in; the password hash never does.
type Claims struct {
	ID       string // user document id
	Username string // login name at issue time
	Name     string // display name at issue time
}

// ErrInvalidToken is returned by Parse for any token whose signature does
// not verify against the issuer's secret, or whose payload is not in the
// expected shape.
var ErrInvalidToken = errors.New("invalid token")

// Issuer creates and validates HS256 session tokens with a process-wide
// secret.  Tokens carry no expiry claim: lifetime is enforced only by the
// cookie that delivers them, so an issued token cannot be revoked
// server-side (see DESIGN.md).
type Issuer struct {
	secret []byte
}

// NewIssuer constructs an Issuer from the configured signing secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs a token embedding the given claims plus an issued-at stamp.
func (i *Issuer) Issue(c Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       c.ID,
		"username": c.Username,
		"name":     c.Name,
	})
	return t.SignedString(i.secret)
}

// Parse verifies the token signature and extracts the claims.  Tokens
// signed with a different method or secret are rejected with
// ErrInvalidToken.
func (i *Issuer) Parse(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	c := Claims{}
	if v, ok := mc["id"].(string); ok {
		c.ID = v
	}
	if v, ok := mc["username"].(string); ok {
		c.Username = v
	}
	if v, ok := mc["name"].(string); ok {
		c.Name = v
	}
	if c.ID == "" {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}
