package middleware

// identity.go provides the userID helper the rate limiter uses to key
// buckets per account.  It reads the user_id value stored by JWTAuth,
// or falls back to the claims of a raw jwt.Token left in the context,
// and finally to "guest" for anonymous visitors such as landing-page
// chat users.

import (
    "fmt"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the Echo context.  It returns
// "guest" when no user is authenticated or the claims are missing.
func userID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    case uint64:
        return fmt.Sprintf("%d", v)
    }
    if tok, ok := c.Get("user").(*jwt.Token); ok {
        if cl, ok := tok.Claims.(jwt.MapClaims); ok {
            if v, ok := cl["sub"].(string); ok && v != "" {
                return v
            }
            if v, ok := cl["user_id"].(string); ok && v != "" {
                return v
            }
        }
    }
    return "guest"
}
