package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/model"
    "github.com/alamtutoring/portal/internal/repository"
)

// ProfileHandler serves the student profile and onboarding endpoints.
type ProfileHandler struct {
    Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
    return &ProfileHandler{Profiles: p}
}

type onboardingReq struct {
    FullName        string `json:"full_name"`
    GradeLevel      string `json:"grade_level"`
    PhoneNumber     string `json:"phone_number"`
    InstagramHandle string `json:"instagram_handle"`
    Goals           string `json:"goals"`
}

// CompleteOnboarding upserts the caller's profile and marks onboarding done.
// Full name, grade level and phone number are required; instagram and goals
// are optional.
func (h *ProfileHandler) CompleteOnboarding(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req onboardingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.FullName = strings.TrimSpace(req.FullName)
    req.GradeLevel = strings.TrimSpace(req.GradeLevel)
    req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

    if req.FullName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
    }
    if !model.ValidGradeLevel(req.GradeLevel) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid grade_level"})
    }
    if req.PhoneNumber == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number is required"})
    }

    p := &model.Profile{
        ID:                  uid,
        FullName:            req.FullName,
        GradeLevel:          req.GradeLevel,
        PhoneNumber:         req.PhoneNumber,
        Goals:               strings.TrimSpace(req.Goals),
        OnboardingCompleted: true,
    }
    if ig := strings.TrimSpace(req.InstagramHandle); ig != "" {
        p.InstagramHandle = &ig
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Profiles.UpsertProfile(ctx, p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save profile failed"})
    }
    return c.JSON(http.StatusOK, p)
}

// GetProfile returns the caller's profile. A missing row is reported as
// onboarding_completed=false so the client knows to run onboarding.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Profiles.GetProfile(ctx, uid)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusOK, echo.Map{"onboarding_completed": false})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
    }
    return c.JSON(http.StatusOK, p)
}
