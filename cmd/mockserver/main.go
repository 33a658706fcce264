package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/logging"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/mockapi"
)

func main() {
	port := flag.String("port", "8080", "port to listen on")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := logging.NewLogger(*level, "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	secret := os.Getenv("JOBLUU_MOCK_SECRET")
	if secret == "" {
		secret = "mock-secret-not-for-production"
	}

	server := mockapi.NewServer(secret, logger)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting mock backend", zap.String("port", *port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
