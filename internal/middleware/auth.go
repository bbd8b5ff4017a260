package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix trimming
    "time"     // leeway duration for token verification

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/movie-catalog/internal/utils" // token parsing
)

// TokenAuth returns an Echo middleware that validates a session token and
// injects the token's subject into the request context. The admin console
// sends the bare token in the authorization header; a "Bearer " prefix is
// accepted as well. The provided secret must match the one used when
// issuing tokens. Handlers behind this middleware can read the
// authenticated user via `c.Get("user_id")`. Authorization is binary:
// any valid, unexpired token grants full access.
func TokenAuth(secret string, leeway time.Duration) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := c.Request().Header.Get("Authorization")
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token"})
            }
            raw = strings.TrimPrefix(raw, "Bearer ")

            uid, err := utils.ParseSessionToken(secret, raw, leeway)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
            }
            c.Set("user_id", uid)
            return next(c)
        }
    }
}
