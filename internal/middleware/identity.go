package middleware // declare the middleware package; contains reusable HTTP middleware functions

// identity.go attaches an optional owner identity to requests. Identity
// issuance lives in an external service; this module only verifies a
// Bearer token when one is supplied and records its subject as the
// session owner reference. Guests are always allowed: a missing token
// simply means an unowned session, while a present but invalid token is
// rejected so a client cannot silently lose its owner binding.

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// ownerKey is the context key under which the verified owner id is stored.
const ownerKey = "owner_id"

// OptionalAuth returns an Echo middleware that validates a Bearer token
// when present and injects its subject claim into the request context.
// Requests without an Authorization header pass through as guests. An
// empty secret disables verification entirely, which is the guests-only
// deployment mode.
func OptionalAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if secret == "" || !strings.HasPrefix(auth, "Bearer ") {
                return next(c)
            }
            raw := strings.TrimPrefix(auth, "Bearer ")
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            if claims, ok := tok.Claims.(jwt.MapClaims); ok {
                if sub, ok := claims["sub"].(string); ok && sub != "" {
                    c.Set(ownerKey, sub)
                }
            }
            return next(c)
        }
    }
}

// OwnerID extracts the verified owner identifier from the request
// context. It returns the empty string for guests.
func OwnerID(c echo.Context) string {
    if v, ok := c.Get(ownerKey).(string); ok {
        return v
    }
    return ""
}
