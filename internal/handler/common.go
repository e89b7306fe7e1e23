package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/lifecycle"
    "github.com/alamtutoring/portal/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// getCaller builds the lifecycle caller identity from the claims the
// JWT middleware stored in the context.
func getCaller(c echo.Context) (lifecycle.Caller, error) {
    uid, err := getUserID(c)
    if err != nil {
        return lifecycle.Caller{}, err
    }
    caller := lifecycle.Caller{UserID: uid}
    if v, ok := c.Get("email").(string); ok {
        caller.Email = v
    }
    if v, ok := c.Get("role").(string); ok {
        caller.Role = v
    }
    return caller, nil
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// lifecycleError translates an engine error into the matching HTTP
// response.  Unrecognized errors become a generic 500 so internals are
// never leaked to the client.
func lifecycleError(c echo.Context, err error) error {
    switch {
    case lifecycle.IsValidation(err):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.Is(err, lifecycle.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, lifecycle.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, lifecycle.ErrPendingChange):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, lifecycle.ErrNoPendingChange):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrEmailExists):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, please try again"})
}
