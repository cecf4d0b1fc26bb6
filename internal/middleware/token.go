package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
)

// TokenAuth returns an Echo middleware that authenticates a request from
// its session token and injects the token's identity claims into the
// request context.  The token is read from the `token` cookie set at login;
// an `Authorization: Bearer` header is accepted as a fallback for clients
// that do not hold cookies.  Handlers downstream read the identity via
// c.Get("user_id").  The middleware only parses tokens — handlers never do.
func TokenAuth(issuer *auth.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie("token"); err == nil && ck.Value != "" {
				raw = ck.Value
			} else if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing token"})
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			// Store the identity in the context for downstream handlers.
			c.Set("user_id", claims.ID)
			c.Set("username", claims.Username)
			c.Set("name", claims.Name)
			return next(c)
		}
	}
}
