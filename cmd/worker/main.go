package main

import (
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"eventful/config"
	"eventful/internal/adapters/email"
	"eventful/internal/adapters/queue"
	"eventful/internal/repository/postgres"
	"eventful/internal/services"
	"eventful/internal/workers"

	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

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

	reminderRepo := postgres.NewReminderRepository(db)

	taskQueue, closeQueue := queue.NewClient(cfg.RedisAddr)
	defer closeQueue()

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

	emailService := services.NewEmailService(mailer, renderer)
	reminderService := services.NewReminderService(reminderRepo, taskQueue, logger)

	handler := workers.NewReminderHandler(reminderService, emailService, logger)
	srv, mux := workers.NewServer(cfg.RedisAddr, handler, logger)

	scheduler, err := workers.NewScheduler(cfg.RedisAddr, logger)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	if err := srv.Start(mux); err != nil {
		logger.Error("failed to start worker server", "error", err)
		os.Exit(1)
	}
	logger.Info("worker started", "redis", cfg.RedisAddr, "env", cfg.Environment)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped")
}
