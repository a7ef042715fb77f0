package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"samedayramps-backend/internal/config"
	"samedayramps-backend/internal/jobs"
	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/repository/postgres"
	"samedayramps-backend/internal/scheduler"
	"samedayramps-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('quote-follow-ups', 'installation-reminders', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Same Day Ramps Cronjob Runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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
	emailSvc := service.NewSendGridEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	jobRunner := jobs.NewJobRunner(store, emailSvc, cfg)

	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("Cronjob runner started, waiting for scheduled jobs...")
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down cronjob runner...")
}

func runSingleJob(jobRunner *jobs.JobRunner, name string) {
	logger.Info("Running job once", "job", name)
	switch name {
	case "quote-follow-ups":
		jobRunner.SendQuoteFollowUps()
	case "installation-reminders":
		jobRunner.SendInstallationReminders()
	case "all":
		jobRunner.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", name)
		log.Fatalf("Unknown job name: %s", name)
	}
}
