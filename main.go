package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"quizapi/config"
	"quizapi/handlers"
	"quizapi/middleware"
	"quizapi/models"
	"quizapi/routes"
	"quizapi/security"
	"quizapi/services"
	"quizapi/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	err = db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
	)
	if err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	st := store.New(db)
	audit := security.NewLogger(auditSink(cfg))

	quizService := services.NewQuizService(st, cfg.Limits)
	questionService := services.NewQuestionService(st, cfg.Limits)
	answerService := services.NewAnswerService(st, cfg.Limits)

	quizHandler := handlers.NewQuizHandler(quizService, audit)
	questionHandler := handlers.NewQuestionHandler(questionService, audit)
	answerHandler := handlers.NewAnswerHandler(answerService, audit)
	healthHandler := handlers.NewHealthHandler(db)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders(cfg.AllowedOrigins))
	router.Use(middleware.RateLimit(rateLimitCounter(cfg), cfg.RateLimitMax, cfg.RateLimitWindow, audit))
	router.Use(middleware.Audit(audit))

	routes.SetupRoutes(router, quizHandler, questionHandler, answerHandler, healthHandler)

	addr := cfg.BindAddress + ":" + cfg.Port
	slog.Info("server starting", "addr", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// rateLimitCounter prefers the shared Redis counter and falls back to the
// in-process one when Redis is unreachable.
func rateLimitCounter(cfg *config.Config) middleware.Counter {
	client := config.InitRedis(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, using in-memory rate limiter", "error", err)
		return middleware.NewMemoryCounter()
	}
	return middleware.NewRedisCounter(client)
}

func auditSink(cfg *config.Config) io.Writer {
	if cfg.AuditLogPath == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(cfg.AuditLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("cannot open audit log file, falling back to stderr", "path", cfg.AuditLogPath, "error", err)
		return os.Stderr
	}
	return f
}
