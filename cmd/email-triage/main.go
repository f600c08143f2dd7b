package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/config"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/di"
	"github.com/mikey/email-triage/internal/ingest"
	"github.com/mikey/email-triage/internal/triage"
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
	cfg *config.Config,
	logger *zap.Logger,
	pipeline *triage.Pipeline,
	enhancer core.Enhancer,
	store core.MemoryStore,
) error {
	defer logger.Sync()

	triageCfg := cfg.GetTriage()

	raw, err := ingest.LoadThreads(triageCfg.InputPath)
	if err != nil {
		logger.Error("Failed to load threads", zap.Error(err))
		return err
	}
	logger.Info("Loaded inbox threads",
		zap.Int("thread_count", len(raw)),
		zap.String("path", triageCfg.InputPath))

	ctx := context.Background()
	report, err := pipeline.RunSession(ctx, raw)
	if err != nil {
		logger.Error("Triage session failed", zap.Error(err))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("Failed to write session report", zap.Error(err))
		return err
	}

	// Close any resources that need closing
	if closer, ok := enhancer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close enhancement client", zap.Error(err))
		}
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close memory store", zap.Error(err))
		}
	}

	logger.Info("Triage session complete",
		zap.Int("emails_processed", report.EmailCount),
		zap.Int("decisions", len(report.Decisions)))
	return nil
}
