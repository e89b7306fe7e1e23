package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// ContentHandler serves the public marketing content consumed by the
// landing, contact and projects pages.  The copy mirrors what the chat
// assistant tells visitors: first session free, then $30-$60/hr for
// 1-on-1 STEM sessions over Zoom.  The payloads are static, so the
// routes sit behind the response cache.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler { return &ContentHandler{} }

func (h *ContentHandler) Landing(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "hero": echo.Map{
            "title":    "1-on-1 STEM Mentorship That Actually Works",
            "subtitle": "Personalized sessions for middle school, high school and college students.",
            "cta":      "Book Your Free Intro Session",
        },
        "subjects": []string{
            "Math", "Physics", "Chemistry", "Computer Science",
        },
        "pricing": []echo.Map{
            {"name": "First Session", "price_usd": 0, "unit": "session", "description": "Your first 60-minute intro session is completely free."},
            {"name": "Ongoing Sessions", "price_min_usd": 30, "price_max_usd": 60, "unit": "hour", "description": "Rates depend on grade level, subject, and workload."},
        },
        "steps": []echo.Map{
            {"order": 1, "title": "Tell us your goals", "text": "A short onboarding covers your grade level and what you want to improve."},
            {"order": 2, "title": "Book a session", "text": "Pick a topic and a time that fits your schedule."},
            {"order": 3, "title": "Meet and learn", "text": "Join the Zoom link from your dashboard and get to work."},
        },
    })
}

func (h *ContentHandler) Contact(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "email":     "hello@alamtutoring.com",
        "instagram": "@alamtutoring",
        "hours":     "Mon-Sat, 10:00-20:00",
        "location":  "Remote. Sessions run over Zoom.",
        "faq": []echo.Map{
            {"q": "What does tutoring cost?", "a": "The first session is free. After that, rates range from $30-$60/hr depending on grade level, subject, and workload. Payments are made via Venmo or Zelle after each session."},
            {"q": "How do I reschedule?", "a": "Open the session on your dashboard and request a new time. We confirm by text."},
            {"q": "What do I need for a session?", "a": "A laptop with a camera, your course materials, and questions."},
        },
    })
}

func (h *ContentHandler) Projects(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "projects": []echo.Map{
            {
                "title":   "From C to A- in AP Calculus",
                "subject": "Math",
                "summary": "Twelve weeks of targeted sessions rebuilding limits and derivatives from the ground up.",
            },
            {
                "title":   "AP Physics, mechanics finally clicked",
                "subject": "Physics",
                "summary": "Free-body diagrams and energy methods drilled until exam problems felt routine.",
            },
            {
                "title":   "First CS course, first shipped project",
                "subject": "Computer Science",
                "summary": "Weekly pair sessions that took a beginner from loops to a working final project.",
            },
        },
    })
}
