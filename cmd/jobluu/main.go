package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/client"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/config"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/jobs"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/logging"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/notification"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/profile"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/session"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	offline := flag.Bool("offline", false, "serve placeholder jobs instead of calling the backend")
	flag.Parse()

	// Environment overrides from .env, if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Local persistence for tokens and the session slice
	store, err := storage.NewStore(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.Error(err))
	}

	// Create API clients
	api := client.New(cfg.API, logger)
	authClient := client.NewAuthClient(api, logger)
	jobClient := client.NewJobClient(api, logger)
	profileClient := client.NewProfileClient(api, logger)
	notificationClient := client.NewNotificationClient(api, logger)

	// Create stores
	sessionStore := session.NewStore(authClient, store, logger,
		session.WithErrorDismiss(cfg.Errors.DismissAfter),
		session.WithRedirect(func() {
			logger.Info("session ended, sign in again to continue")
		}),
	)
	api.SetTokenProvider(sessionStore.Token)
	api.SetAuthFailureHandler(sessionStore.HandleAuthFailure)

	currentUser := func() int {
		state := sessionStore.Snapshot()
		if state.User == nil {
			return 0
		}
		return state.User.ID
	}

	var alerter notification.Alerter
	if cfg.Notifications.Alerts {
		alerter = notification.NewTerminalAlerter(os.Stdout, logger)
	}
	notificationStore := notification.NewStore(notificationClient, logger,
		notification.WithAlerter(alerter),
		notification.WithCurrentUser(currentUser),
	)

	profileStore := profile.NewStore(profileClient, cfg.Profile.AutosaveDebounce, logger)

	var jobSource jobs.Source = jobs.NewAPISource(jobClient)
	if *offline {
		logger.Warn("running with placeholder job data")
		jobSource = jobs.NewStaticSource()
	}
	jobStore := jobs.NewStore(jobSource, jobClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Restore a persisted session before anything needs the network
	sessionStore.AutoLogin(ctx)
	if state := sessionStore.Snapshot(); state.Authenticated {
		logger.Info("session restored",
			zap.Int("userID", state.User.ID),
			zap.String("accountType", state.User.AccountType))
		if err := profileStore.Load(ctx, state.User.ID); err != nil {
			logger.Warn("failed to load profile", zap.Error(err))
		}
		if listings, err := jobStore.Search(ctx, jobs.Criteria{}, jobs.SortMostRecent); err == nil {
			logger.Info("job board loaded", zap.Int("activeJobs", len(listings)))
		}
	} else {
		logger.Info("no session, starting unauthenticated")
	}

	// Start the notification poller
	poller := notification.NewPoller(notificationStore, cfg.Notifications.PollInterval, logger)
	go poller.Run(ctx, currentUser)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	cancel()

	// Push any pending autosave through before exiting
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	profileStore.Flush(flushCtx)

	logger.Info("Client exited properly")
}
