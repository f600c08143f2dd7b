package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/behavior"
	"github.com/mikey/email-triage/internal/config"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/factory"
	"github.com/mikey/email-triage/internal/ingest"
	"github.com/mikey/email-triage/internal/intent"
	"github.com/mikey/email-triage/internal/logging"
	"github.com/mikey/email-triage/internal/situation"
	"github.com/mikey/email-triage/internal/social"
	"github.com/mikey/email-triage/internal/specialist"
	"github.com/mikey/email-triage/internal/triage"
	"github.com/mikey/email-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewEnhancerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register enhancement client
	if err := container.Provide(func(f *factory.EnhancerFactory) (core.Enhancer, error) {
		return f.CreateEnhancer()
	}); err != nil {
		return nil, err
	}

	// Register trait memory store
	if err := container.Provide(func(f *factory.StoreFactory) (core.MemoryStore, error) {
		return f.CreateMemoryStore()
	}); err != nil {
		return nil, err
	}

	// Register pipeline stages
	if err := container.Provide(ingest.NewNormalizer); err != nil {
		return nil, err
	}
	if err := container.Provide(situation.NewModel); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *social.Graph {
		return social.NewGraph(cfg.GetTriage().SelfAddress, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(intent.NewClassifier); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store core.MemoryStore, logger *zap.Logger) (*behavior.Model, error) {
		return behavior.NewModel(context.Background(), store, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(specialist.NewRegistry); err != nil {
		return nil, err
	}

	// Register triage pipeline
	if err := container.Provide(triage.NewPipeline); err != nil {
		return nil, err
	}

	return container, nil
}
