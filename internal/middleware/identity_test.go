package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"

    "github.com/alamtutoring/portal/internal/config"
)

func identityContext(t *testing.T) echo.Context {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    return e.NewContext(req, httptest.NewRecorder())
}

func TestUserIDAnonymous(t *testing.T) {
    c := identityContext(t)
    assert.Equal(t, "guest", userID(c))
}

func TestUserIDFromContextValue(t *testing.T) {
    // JWTAuth stores the sub claim; after JSON decoding it arrives as a
    // float64.
    c := identityContext(t)
    c.Set("user_id", float64(42))
    assert.Equal(t, "42", userID(c))

    c = identityContext(t)
    c.Set("user_id", "7")
    assert.Equal(t, "7", userID(c))
}

func TestUserIDFromTokenClaims(t *testing.T) {
    c := identityContext(t)
    c.Set("user", &jwt.Token{Claims: jwt.MapClaims{"sub": "19"}})
    assert.Equal(t, "19", userID(c))
}

func TestRateKeyIncludesUser(t *testing.T) {
    c := identityContext(t)
    c.Set("user_id", "7")
    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
    key := buildRateKey(cfg, c)
    assert.Contains(t, key, "user:7")
}
