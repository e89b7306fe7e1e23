package router

import (
    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/handler"
    "github.com/alamtutoring/portal/internal/middleware"
    "github.com/alamtutoring/portal/internal/model"
)

// RegisterStudent registers student-scoped endpoints under /v1.  All routes
// require a valid JWT and the STUDENT role.  Students complete onboarding,
// read their dashboard, book sessions, and request changes to upcoming
// sessions.
func RegisterStudent(e *echo.Echo, p *handler.ProfileHandler, s *handler.StudentHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleStudent),
    )
    g.POST("/onboarding", p.CompleteOnboarding)
    g.GET("/profile", p.GetProfile)

    g.GET("/dashboard", s.Dashboard)
    g.POST("/bookings", s.CreateBooking)
    // Change requests only flag the booking; the admin resolves them.
    g.POST("/bookings/:id/reschedule", s.RequestReschedule)
    g.POST("/bookings/:id/cancel", s.RequestCancel)
}
