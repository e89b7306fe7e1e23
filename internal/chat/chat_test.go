package chat

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDashboardPrompt(t *testing.T) {
    notes := "Covered derivatives"
    sessions := []SessionSummary{
        {Topic: "Calculus", Notes: &notes, Date: time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)},
        {Topic: "Limits", Notes: nil, Date: time.Date(2025, 2, 20, 15, 0, 0, 0, time.UTC)},
    }
    p := DashboardPrompt(sessions)
    assert.Contains(t, p, `"Calculus"`)
    assert.Contains(t, p, "Covered derivatives")
    assert.Contains(t, p, "3/1/2025")
    assert.Contains(t, p, "No notes recorded.")
}

func TestDashboardPromptEmptyHistory(t *testing.T) {
    p := DashboardPrompt(nil)
    assert.Contains(t, p, "No past sessions found.")
}

func TestLandingPromptMentionsBookingLimitation(t *testing.T) {
    p := LandingPrompt()
    assert.Contains(t, p, "CANNOT book sessions")
}

func TestClientComplete(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
        assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there!"}}]}`))
    }))
    defer srv.Close()

    c := NewClient("test-key", srv.URL, "test-model", "GuapBot")
    reply, err := c.Complete(context.Background(), LandingPrompt(), []Message{{Role: "user", Content: "hello"}})
    require.NoError(t, err)
    assert.Equal(t, "Hi there!", reply)
}

func TestClientUpstreamError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "rate limited", http.StatusTooManyRequests)
    }))
    defer srv.Close()

    c := NewClient("test-key", srv.URL, "test-model", "GuapBot")
    _, err := c.Complete(context.Background(), "system", nil)
    require.Error(t, err)
    assert.True(t, IsQuotaError(err))
}

func TestClientEmptyChoices(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte(`{"choices":[]}`))
    }))
    defer srv.Close()

    c := NewClient("test-key", srv.URL, "test-model", "GuapBot")
    _, err := c.Complete(context.Background(), "system", nil)
    require.Error(t, err)
    assert.False(t, IsQuotaError(err))
}

func TestIsQuotaError(t *testing.T) {
    assert.False(t, IsQuotaError(nil))
    assert.True(t, IsQuotaError(&UpstreamError{Status: 429, Body: "slow down"}))
    assert.True(t, IsQuotaError(&UpstreamError{Status: 500, Body: "quota exceeded"}))
    assert.False(t, IsQuotaError(&UpstreamError{Status: 500, Body: "boom"}))
}

func TestClientEnabled(t *testing.T) {
    assert.False(t, NewClient("", "url", "m", "a").Enabled())
    assert.True(t, NewClient("k", "url", "m", "a").Enabled())
}
