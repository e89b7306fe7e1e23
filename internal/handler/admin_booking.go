package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/lifecycle"
    "github.com/alamtutoring/portal/internal/model"
    "github.com/alamtutoring/portal/internal/repository"
)

// AdminHandler serves the admin dashboard and session management endpoints.
type AdminHandler struct {
    Engine   *lifecycle.Engine
    Bookings *repository.BookingRepo
}

func NewAdminHandler(e *lifecycle.Engine, b *repository.BookingRepo) *AdminHandler {
    return &AdminHandler{Engine: e, Bookings: b}
}

// ----- DTOs -----

type meetingLinkReq struct {
    MeetingLink string `json:"meeting_link"`
}

type completeReq struct {
    SessionNotes  string `json:"session_notes"`
    ResourceTitle string `json:"resource_title"`
    ResourceURL   string `json:"resource_url"`
}

type resolveReq struct {
    Decision string `json:"decision"`
}

type goalsReq struct {
    Goals string `json:"goals"`
}

type adminStats struct {
    TotalBookings   int `json:"total_bookings"`
    PendingSessions int `json:"pending_sessions"`
    CompletedHours  int `json:"completed_hours"`
    UniqueStudents  int `json:"unique_students"`
}

type adminDashboardResp struct {
    Bookings []repository.AdminBooking `json:"bookings"`
    Stats    adminStats                `json:"stats"`
}

// aggregateStats derives the header-card counters from the full booking
// list.  Cancelled bookings count toward the total and the student set
// but neither pending nor completed.
func aggregateStats(bookings []repository.AdminBooking) adminStats {
    stats := adminStats{TotalBookings: len(bookings)}
    students := map[uint64]struct{}{}
    for _, b := range bookings {
        switch b.Status {
        case model.BookingStatusUpcoming:
            stats.PendingSessions++
        case model.BookingStatusCompleted:
            stats.CompletedHours++
        }
        students[b.StudentID] = struct{}{}
    }
    stats.UniqueStudents = len(students)
    return stats
}

// Dashboard lists every booking with the student's profile joined in,
// plus aggregate counters for the header cards.
func (h *AdminHandler) Dashboard(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
    }
    return c.JSON(http.StatusOK, adminDashboardResp{Bookings: bookings, Stats: aggregateStats(bookings)})
}

// SetMeetingLink attaches or replaces the meeting link on a booking.
func (h *AdminHandler) SetMeetingLink(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseIDParam(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req meetingLinkReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Engine.AttachMeetingLink(ctx, caller, id, req.MeetingLink)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// CompleteSession marks a booking completed with notes and an optional
// single resource link.
func (h *AdminHandler) CompleteSession(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseIDParam(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req completeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    var res *model.Resource
    if strings.TrimSpace(req.ResourceURL) != "" {
        res = &model.Resource{Title: req.ResourceTitle, URL: strings.TrimSpace(req.ResourceURL)}
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Engine.CompleteSession(ctx, caller, id, req.SessionNotes, res)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// ResolvePendingChange approves or denies a student's pending
// cancel/reschedule request.
func (h *AdminHandler) ResolvePendingChange(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseIDParam(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req resolveReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Engine.ResolvePendingChange(ctx, caller, id, req.Decision)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// UpdateGoals edits a student's learning goals.
func (h *AdminHandler) UpdateGoals(c echo.Context) error {
    caller, err := getCaller(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    studentID, err := parseIDParam(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id"})
    }
    var req goalsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Engine.UpdateGoals(ctx, caller, studentID, req.Goals)
    if err != nil {
        return lifecycleError(c, err)
    }
    return c.JSON(http.StatusOK, p)
}
