package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/alamtutoring/portal/internal/chat"
    "github.com/alamtutoring/portal/internal/config"
    "github.com/alamtutoring/portal/internal/database"
    "github.com/alamtutoring/portal/internal/handler"
    "github.com/alamtutoring/portal/internal/lifecycle"
    "github.com/alamtutoring/portal/internal/queue"
    "github.com/alamtutoring/portal/internal/repository"
    "github.com/alamtutoring/portal/internal/router"
    "github.com/alamtutoring/portal/internal/service"
)

func main() {
    // .env is optional; real deployments set variables directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: cache and rate limiting degrade to pass-through
    // when the client is nil.
    rdb := config.NewRedisClient()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    store := repository.NewStore(db)

    // drop refresh tokens that expired more than a week ago
    {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        if err := tokens.PurgeExpired(ctx, 7*24*time.Hour); err != nil {
            log.Printf("token purge: %v", err)
        }
        cancel()
    }

    engine := lifecycle.New(store, service.NewAdminNotifier(), cfg.BookingLead)
    chatClient := chat.NewClient(cfg.ChatAPIKey, cfg.ChatBaseURL, cfg.ChatModel, cfg.ChatAppName)

    // Consume change-request events in the background; reconnects on its own.
    go func() {
        if err := queue.StartChangeConsumer(); err != nil {
            log.Printf("change consumer: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
    router.RegisterStudent(e,
        handler.NewProfileHandler(store.ProfileRepo),
        handler.NewStudentHandler(engine, store.BookingRepo, store.ProfileRepo),
        cfg.JWTSecret)
    router.RegisterAdmin(e, handler.NewAdminHandler(engine, store.BookingRepo), cfg.JWTSecret)
    router.RegisterPublic(e,
        handler.NewContentHandler(),
        handler.NewChatHandler(chatClient, store.BookingRepo, cfg.JWTSecret),
        rdb)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
