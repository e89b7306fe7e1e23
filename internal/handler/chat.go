package handler

import (
    "context"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/chat"
    "github.com/alamtutoring/portal/internal/repository"
)

// ChatHandler proxies assistant conversations to the upstream model.
// The route is public: landing-page visitors chat anonymously, while
// dashboard users send a Bearer token so their session history can be
// folded into the prompt.
type ChatHandler struct {
    Client    *chat.Client
    Bookings  *repository.BookingRepo
    JWTSecret string
}

func NewChatHandler(client *chat.Client, b *repository.BookingRepo, jwtSecret string) *ChatHandler {
    return &ChatHandler{Client: client, Bookings: b, JWTSecret: jwtSecret}
}

type chatReq struct {
    Messages []chat.Message `json:"messages"`
    Context  string         `json:"context"`
}

type chatResp struct {
    Reply string `json:"reply"`
}

// historyLimit caps how many completed sessions feed the dashboard prompt.
const historyLimit = 5

// Chat answers one turn of the conversation.
func (h *ChatHandler) Chat(c echo.Context) error {
    if h.Client == nil || !h.Client.Enabled() {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "chat is not configured"})
    }

    var req chatReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if len(req.Messages) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "messages required"})
    }

    reqID := uuid.NewString()

    system := chat.LandingPrompt()
    if req.Context == chat.ContextDashboard {
        if uid, ok := h.bearerUserID(c); ok {
            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            sessions, err := h.Bookings.ListRecentCompleted(ctx, uid, historyLimit)
            cancel()
            if err != nil {
                log.Printf("[CHAT] %s history lookup failed user=%d: %v", reqID, uid, err)
                sessions = nil
            }
            system = chat.DashboardPrompt(toSummaries(sessions))
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
    defer cancel()

    reply, err := h.Client.Complete(ctx, system, req.Messages)
    if err != nil {
        if chat.IsQuotaError(err) {
            log.Printf("[CHAT] %s upstream quota exhausted: %v", reqID, err)
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error": "Service temporarily unavailable. Please try again later.",
                "code":  "QUOTA_EXCEEDED",
            })
        }
        log.Printf("[CHAT] %s upstream failed: %v", reqID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "chat request failed"})
    }
    return c.JSON(http.StatusOK, chatResp{Reply: reply})
}

func toSummaries(sessions []repository.CompletedSession) []chat.SessionSummary {
    out := make([]chat.SessionSummary, 0, len(sessions))
    for _, s := range sessions {
        out = append(out, chat.SessionSummary{Topic: s.Topic, Notes: s.SessionNotes, Date: s.StartTime})
    }
    return out
}

// bearerUserID parses an optional Authorization header. A missing or
// invalid token is not an error here; the chat just falls back to the
// anonymous prompt.
func (h *ChatHandler) bearerUserID(c echo.Context) (uint64, bool) {
    authHeader := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(authHeader, "Bearer ") {
        return 0, false
    }
    raw := strings.TrimPrefix(authHeader, "Bearer ")
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, echo.ErrUnauthorized
        }
        return []byte(h.JWTSecret), nil
    })
    if err != nil || !tok.Valid {
        return 0, false
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, false
    }
    switch sub := claims["sub"].(type) {
    case float64:
        return uint64(sub), true
    case string:
        if parsed, err := strconv.ParseUint(sub, 10, 64); err == nil {
            return parsed, true
        }
    }
    return 0, false
}
