package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/alamtutoring/portal/internal/config"
    "github.com/alamtutoring/portal/internal/handler"
    "github.com/alamtutoring/portal/internal/middleware"
)

// RegisterPublic registers unauthenticated endpoints: the static marketing
// content behind the Redis response cache, and the chat proxy behind the
// token-bucket rate limiter.  Both middlewares degrade to pass-through when
// Redis is unavailable, so the routes still work in a bare dev setup.
func RegisterPublic(e *echo.Echo, ct *handler.ContentHandler, ch *handler.ChatHandler, rdb *redis.Client) {
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    content := e.Group("/v1/content", cacheMW)
    content.GET("/landing", ct.Landing)
    content.GET("/contact", ct.Contact)
    content.GET("/projects", ct.Projects)

    // Chat is public (the handler upgrades the prompt when a Bearer token
    // is present) but rate limited per user/IP to protect the upstream.
    limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    e.POST("/v1/chat", ch.Chat, limitMW)
}
