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

	"golang.org/x/crypto/bcrypt"

	"eventful/config"
	"eventful/internal/adapters/auth"
	"eventful/internal/adapters/blob"
	"eventful/internal/adapters/email"
	"eventful/internal/adapters/qr"
	"eventful/internal/cache"
	delivery "eventful/internal/delivery/http"
	"eventful/internal/delivery/http/controllers"
	"eventful/internal/delivery/http/middleware"
	"eventful/internal/repository/postgres"
	"eventful/internal/services"

	_ "github.com/lib/pq"
)

// @title Eventful API
// @version 1.0
// @description Event management API: organizers publish events and scan tickets, attendees apply and generate QR tickets.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	organizerRepo := postgres.NewOrganizerRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer, tokenVerifier := auth.NewJWTAuthenticator(cfg.JWTSecret)
	ticketSigner := auth.NewTicketTokenSigner(cfg.TicketTokenSecret)
	qrEncoder := qr.NewPNGEncoder(cfg.QRCodeSize)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("failed to create template renderer", "error", err)
		os.Exit(1)
	}
	blobStore, err := blob.NewStore(blob.StoreConfig{
		Provider: cfg.BlobProvider,
		S3: blob.S3Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			PublicURLBase:   cfg.S3PublicURLBase,
		},
	})
	if err != nil {
		logger.Error("failed to create blob store", "error", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	analyticsService := services.NewAnalyticsService(eventRepo, ticketRepo, applicationRepo, organizerRepo, cache.NewAnalyticsCache(cfg.AnalyticsCacheTTL))
	userService := services.NewUserService(userRepo, organizerRepo, attendeeRepo, hasher, tokenIssuer, cfg.LoginTokenExpiry, emailService)
	eventService := services.NewEventService(eventRepo, organizerRepo, userRepo, applicationRepo, reminderRepo, blobStore)
	attendeeService := services.NewAttendeeService(eventRepo, attendeeRepo, organizerRepo, userRepo, applicationRepo, reminderRepo, analyticsService)
	ticketService := services.NewTicketService(eventRepo, attendeeRepo, ticketRepo, ticketSigner, qrEncoder, analyticsService)

	// Controllers and router
	mux := delivery.NewRouter(
		controllers.NewUserController(logger, userService),
		controllers.NewEventController(logger, eventService),
		controllers.NewAttendeeController(logger, attendeeService),
		controllers.NewTicketController(logger, ticketService),
		controllers.NewAnalyticsController(logger, analyticsService),
		tokenVerifier,
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("api stopped")
}
