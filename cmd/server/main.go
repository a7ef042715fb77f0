package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "samedayramps-backend/internal/api/http"
	"samedayramps-backend/internal/config"
	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/repository/postgres"
	"samedayramps-backend/internal/security"
	"samedayramps-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Same Day Ramps Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenExpiry)*time.Minute,
	)

	notifier := buildNotifier(cfg)

	emailSvc := service.NewSendGridEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	distanceSvc, err := service.NewGoogleDistanceService(cfg.Maps.APIKey)
	if err != nil {
		logger.Error("Failed to initialize maps client", "error", err)
		log.Fatalf("Failed to initialize maps client: %v", err)
	}

	paymentSvc := service.NewStripePaymentLinkService(cfg.Stripe.SecretKey)
	agreementSvc := service.NewESignaturesAgreementService(
		cfg.ESignatures.APIKey,
		cfg.ESignatures.BaseURL,
		cfg.ESignatures.TemplateID,
	)

	pricingSvc := service.NewPricingService(store.PricingVariablesRepository, distanceSvc)
	jobSvc := service.NewJobService(
		store.JobRepository,
		pricingSvc,
		emailSvc,
		paymentSvc,
		agreementSvc,
		notifier,
		cfg.Frontend.URL,
	)
	requestSvc := service.NewRentalRequestService(store.RentalRequestRepository, store.JobRepository, notifier)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Jobs:           httpapi.NewJobHandler(jobSvc, pricingSvc),
		RentalRequests: httpapi.NewRentalRequestHandler(requestSvc),
		PricingVars:    httpapi.NewPricingVariablesHandler(pricingSvc),
		Contact:        httpapi.NewContactHandler(emailSvc, notifier, cfg.Email.FromEmail),
		Auth:           httpapi.NewAuthHandler(tokenManager, cfg.Auth.AdminEmail, cfg.Auth.AdminPasswordHash),
		AuthMiddleware: httpapi.NewAuthMiddleware(tokenManager),
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// buildNotifier selects the push provider from configuration.
func buildNotifier(cfg *config.Config) service.Notifier {
	switch cfg.Push.Provider {
	case "pushover":
		logger.Info("Using Pushover notifications")
		return service.NewPushoverNotifier(cfg.Push.Pushover.Token, cfg.Push.Pushover.UserKey)
	case "fcm":
		logger.Info("Using FCM notifications", "topic", cfg.Push.FCM.Topic)
		notifier, err := service.NewFCMNotifier(context.Background(), cfg.Push.FCM.CredentialsFile, cfg.Push.FCM.Topic)
		if err != nil {
			logger.Error("Failed to initialize FCM, push disabled", "error", err)
			return service.NewNoopNotifier()
		}
		return notifier
	default:
		logger.Info("Push notifications disabled")
		return service.NewNoopNotifier()
	}
}
