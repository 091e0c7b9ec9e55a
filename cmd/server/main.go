package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"courtbook/config"
	_ "courtbook/docs"
	adapterauth "courtbook/internal/adapters/auth"
	"courtbook/internal/adapters/email"
	delivery "courtbook/internal/delivery/http"
	"courtbook/internal/delivery/http/controllers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/repository/postgres"
	"courtbook/internal/services"
)

// @title Courtbook API
// @version 1.0
// @description Booking backend for coaching lessons: participant selection validation, lesson storage, and calendar artifact generation.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	coachRepo := postgres.NewCoachRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	lessonRepo := postgres.NewLessonRepository(db)

	hasher := adapterauth.NewBcryptHasher(0)
	tokenIssuer, tokenVerifier := adapterauth.NewJWTTokens(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    "Courtbook",
		SES: email.SESConfig{
			Region: cfg.AWSRegion,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	loc := cfg.Location()
	authSvc := services.NewAuthService(coachRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	selectionSvc := services.NewSelectionService()
	calendarSvc := services.NewCalendarService(loc)
	lessonSvc := services.NewLessonService(lessonRepo, calendarSvc, emailSvc, loc)

	authController := controllers.NewAuthController(logger, authSvc)
	groupController := controllers.NewGroupController(logger, groupRepo)
	playerController := controllers.NewPlayerController(logger, playerRepo)
	bookingController := controllers.NewBookingController(logger, selectionSvc, groupRepo)
	lessonController := controllers.NewLessonController(logger, lessonSvc)

	mux := delivery.NewRouter(logger, tokenVerifier, authController, groupController, playerController, bookingController, lessonController)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
