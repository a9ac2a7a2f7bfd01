package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
	"github.com/mikey/llm-scam-detector/internal/di"
	"github.com/mikey/llm-scam-detector/internal/server"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	srv *server.Server,
	detector *core.ScamDetector,
	store core.PatternStore,
) error {
	defer logger.Sync()

	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := srv.Stop(); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}

	// Close the in-use completion client and the pattern store
	if prev := detector.SetCompletionClient(nil); prev != nil {
		if err := prev.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("Failed to close pattern store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
