package handler

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alamtutoring/portal/internal/lifecycle"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestLifecycleErrorMapping(t *testing.T) {
    cases := []struct {
        name string
        err  error
        code int
    }{
        {"validation", &lifecycle.ValidationError{Msg: "topic is required"}, http.StatusBadRequest},
        {"not found", lifecycle.ErrNotFound, http.StatusNotFound},
        {"forbidden", lifecycle.ErrForbidden, http.StatusForbidden},
        {"pending change", lifecycle.ErrPendingChange, http.StatusConflict},
        {"no pending change", lifecycle.ErrNoPendingChange, http.StatusConflict},
        {"unknown", errors.New("db went away"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := newTestContext(t)
            require.NoError(t, lifecycleError(c, tc.err))
            assert.Equal(t, tc.code, rec.Code)
        })
    }
}

func TestLifecycleErrorHidesInternals(t *testing.T) {
    c, rec := newTestContext(t)
    require.NoError(t, lifecycleError(c, errors.New("dial tcp 10.0.0.3:3306: connection refused")))
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestGetUserIDTypes(t *testing.T) {
    for _, v := range []interface{}{uint64(7), int(7), int64(7), float64(7), "7"} {
        c, _ := newTestContext(t)
        c.Set("user_id", v)
        got, err := getUserID(c)
        require.NoError(t, err)
        assert.Equal(t, uint64(7), got)
    }

    c, _ := newTestContext(t)
    c.Set("user_id", "not-a-number")
    _, err := getUserID(c)
    assert.Error(t, err)
}

func TestGetCaller(t *testing.T) {
    c, _ := newTestContext(t)
    c.Set("user_id", uint64(42))
    c.Set("email", "student@example.com")
    c.Set("role", "STUDENT")

    caller, err := getCaller(c)
    require.NoError(t, err)
    assert.Equal(t, uint64(42), caller.UserID)
    assert.Equal(t, "student@example.com", caller.Email)
    assert.Equal(t, "STUDENT", caller.Role)
    assert.False(t, caller.IsAdmin())
}
