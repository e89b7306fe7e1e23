package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alamtutoring/portal/internal/chat"
)

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Chat(e.NewContext(req, rec)))
    return rec
}

func TestChatDisabled(t *testing.T) {
    h := NewChatHandler(chat.NewClient("", "http://unused", "m", "app"), nil, "secret")
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)
    assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChatEmptyMessages(t *testing.T) {
    h := NewChatHandler(chat.NewClient("key", "http://unused", "m", "app"), nil, "secret")
    rec := postChat(t, h, `{"messages":[]}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatSuccess(t *testing.T) {
    upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello there!"}}]}`))
    }))
    defer upstream.Close()

    h := NewChatHandler(chat.NewClient("key", upstream.URL, "m", "app"), nil, "secret")
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "Hello there!")
}

func TestChatQuotaExceeded(t *testing.T) {
    upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, `{"error":"rate limit"}`, http.StatusTooManyRequests)
    }))
    defer upstream.Close()

    h := NewChatHandler(chat.NewClient("key", upstream.URL, "m", "app"), nil, "secret")
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)
    assert.Equal(t, http.StatusTooManyRequests, rec.Code)
    assert.Contains(t, rec.Body.String(), "QUOTA_EXCEEDED")
}

func TestChatUpstreamFailure(t *testing.T) {
    upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "boom", http.StatusInternalServerError)
    }))
    defer upstream.Close()

    h := NewChatHandler(chat.NewClient("key", upstream.URL, "m", "app"), nil, "secret")
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBearerUserIDAbsent(t *testing.T) {
    h := NewChatHandler(nil, nil, "secret")
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
    rec := httptest.NewRecorder()
    _, ok := h.bearerUserID(e.NewContext(req, rec))
    assert.False(t, ok)

    req.Header.Set("Authorization", "Bearer not.a.token")
    _, ok = h.bearerUserID(e.NewContext(req, rec))
    assert.False(t, ok)
}
