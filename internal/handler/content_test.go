package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alamtutoring/portal/internal/chat"
)

func getContent(t *testing.T, fn echo.HandlerFunc) string {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, fn(e.NewContext(req, rec)))
    assert.Equal(t, http.StatusOK, rec.Code)
    return rec.Body.String()
}

// The marketing pages and the chat assistant must quote the same deal:
// free first session, then $30-$60/hr.
func TestContentPricingMatchesAssistant(t *testing.T) {
    h := NewContentHandler()

    landing := getContent(t, h.Landing)
    assert.Contains(t, landing, `"price_usd":0`)
    assert.Contains(t, landing, `"price_min_usd":30`)
    assert.Contains(t, landing, `"price_max_usd":60`)

    contact := getContent(t, h.Contact)
    assert.Contains(t, contact, "first session is free")
    assert.Contains(t, contact, "$30-$60/hr")

    prompt := chat.LandingPrompt()
    assert.Contains(t, prompt, "FREE")
    assert.Contains(t, prompt, "$30-$60/hr")
}

func TestContentSubjectsMatchAssistant(t *testing.T) {
    h := NewContentHandler()
    landing := getContent(t, h.Landing)
    for _, subject := range []string{"Math", "Physics", "Chemistry", "Computer Science"} {
        assert.Contains(t, landing, subject)
    }
}
