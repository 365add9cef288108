package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-hq/portal-service/internal/cache"
	"github.com/campus-hq/portal-service/internal/config"
	"github.com/campus-hq/portal-service/internal/handlers"
	"github.com/campus-hq/portal-service/internal/mailer"
	"github.com/campus-hq/portal-service/internal/push"
	"github.com/campus-hq/portal-service/internal/repositories/postgres"
	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/campus-hq/portal-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "development" {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it the timer endpoint hits Postgres on
	// every poll.
	var examCache cache.ExamCache = cache.NoopExamCache{}
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, exam timer caching disabled", "error", err)
	} else {
		examCache = cache.NewRedisExamCache(redisClient, 10*time.Minute)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	var mail mailer.Mailer
	if cfg.SendgridAPIKey != "" {
		mail = mailer.NewSendgridMailer(cfg.SendgridAPIKey, cfg.AppName, cfg.FromEmail, slogLogger)
	} else {
		logger.Warn("no sendgrid key configured, logging outbound mail instead")
		mail = mailer.NewConsoleMailer(slogLogger)
	}

	sender := push.NewWebpushSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubject, slogLogger)

	repo := postgres.NewRepository(db)
	serviceManager := services.NewServiceManager(
		repo, cfg, slogLogger, utils.NewValidator(), mail, sender, examCache, publisher,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, cfg, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
