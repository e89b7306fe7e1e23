package router

import (
    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/handler"
    "github.com/alamtutoring/portal/internal/middleware"
    "github.com/alamtutoring/portal/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.  The
// admin oversees every booking: attaching meeting links, completing
// sessions, resolving pending change requests and editing student goals.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    g.GET("/dashboard", a.Dashboard)
    g.PATCH("/bookings/:id/meeting-link", a.SetMeetingLink)
    g.POST("/bookings/:id/complete", a.CompleteSession)
    g.POST("/bookings/:id/resolve", a.ResolvePendingChange)
    g.PATCH("/students/:id/goals", a.UpdateGoals)
}
