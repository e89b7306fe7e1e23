package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/lifecycle"
    "github.com/alamtutoring/portal/internal/model"
    "github.com/alamtutoring/portal/internal/repository"
)

// StudentHandler serves the student dashboard and booking endpoints.
type StudentHandler struct {
    Engine   *lifecycle.Engine
    Bookings *repository.BookingRepo
    Profiles *repository.ProfileRepo
}

func NewStudentHandler(e *lifecycle.Engine, b *repository.BookingRepo, p *repository.ProfileRepo) *StudentHandler {
    return &StudentHandler{Engine: e, Bookings: b, Profiles: p}
}

// ----- DTOs -----

type createBookingReq struct {
    Topic     string    `json:"topic"`
    StartTime time.Time `json:"start_time"`
}

type rescheduleReq struct {
    Reason        string    `json:"reason"`
    RequestedTime time.Time `json:"requested_time"`
}

type cancelReq struct {
    Reason string `json:"reason"`
}

type dashboardStats struct {
    NextSession    *model.Booking `json:"next_session"`
    HoursCompleted int            `json:"hours_completed"`
    ActiveFocus    string         `json:"active_focus"`
}

type dashboardResp struct {
    Upcoming []model.Booking `json:"upcoming"`
    Past     []model.Booking `json:"past"`
    Stats    dashboardStats  `json:"stats"`
}

// activeFocus condenses the profile goals into a short dashboard label:
// the first three words, capped at 20 characters.
func activeFocus(goals string) string {
    goals = strings.TrimSpace(goals)
    if goals == "" {
        return "General Tutoring"
    }
    words := strings.Fields(goals)
    if len(words) > 3 {
        words = words[:3]
    }
    focus := strings.Join(words, " ")
    if len(focus) > 20 {
        focus = focus[:20] + "..."
    }
    return focus
}

// Dashboard returns the caller's bookings split into upcoming/past plus
// the headline stats shown at the top of the page.
func (h *StudentHandler) Dashboard(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListByStudent(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
    }
    cl := lifecycle.Classify(bookings, time.Now())

    goals := ""
    if p, err := h.Profiles.GetProfile(ctx, uid); err == nil {
        goals = p.Goals
    } else if err != sql.ErrNoRows {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
    }

    return c.JSON(http.StatusOK, dashboardResp{
        Upcoming: cl.Upcoming,
        Past:     cl.Past,
        Stats: dashboardStats{
            NextSession:    cl.NextSession(),
            HoursCompleted: cl.HoursCompleted(),
            ActiveFocus:    activeFocus(goals),
        },
    })
}

// CreateBooking books a new session for the caller.
func (h *StudentHandler) CreateBooking(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Engine.CreateBooking(ctx, caller, req.Topic, req.StartTime)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusCreated, b)
}

// RequestReschedule files a reschedule request against an upcoming booking.
func (h *StudentHandler) RequestReschedule(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseIDParam(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    var req rescheduleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Engine.RequestReschedule(ctx, caller, id, req.RequestedTime, req.Reason)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// RequestCancel files a cancellation request against an upcoming booking.
func (h *StudentHandler) RequestCancel(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseIDParam(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    var req cancelReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Engine.RequestCancel(ctx, caller, id, req.Reason)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}
