package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/adapters/bedrock"
	"github.com/mikey/email-triage/internal/adapters/enhance"
	"github.com/mikey/email-triage/internal/adapters/gemini"
	"github.com/mikey/email-triage/internal/adapters/openai"
	"github.com/mikey/email-triage/internal/config"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/utils"
)

// EnhancerFactory creates enhancement clients
type EnhancerFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEnhancerFactory creates a new enhancer factory
func NewEnhancerFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *EnhancerFactory {
	return &EnhancerFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEnhancer creates an enhancement client based on the configuration.
// The "none" provider returns a nil enhancer, which disables the
// enhancement stage of the pipeline.
func (f *EnhancerFactory) CreateEnhancer() (core.Enhancer, error) {
	enhancerCfg, err := f.cfg.GetEnhancer()
	if err != nil {
		return nil, err
	}

	var enhancer core.Enhancer
	switch enhancerCfg.Provider {
	case "none", "":
		return nil, nil
	case "bedrock":
		bedrockCfg := f.cfg.GetBedrock()
		enhancer, err = bedrock.NewEnhancer(
			bedrockCfg.Region,
			bedrockCfg.ModelID,
			bedrockCfg.MaxTokens,
			float32(bedrockCfg.Temperature),
			float32(bedrockCfg.TopP),
			bedrockCfg.MaxBodySize,
			f.logger,
			f.textProcessor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Bedrock enhancer: %w", err)
		}
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		enhancer, err = gemini.NewEnhancer(
			geminiCfg.APIKey,
			geminiCfg.ModelName,
			geminiCfg.MaxTokens,
			float32(geminiCfg.Temperature),
			float32(geminiCfg.TopP),
			geminiCfg.MaxBodySize,
			f.logger,
			f.textProcessor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini enhancer: %w", err)
		}
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		enhancer = openai.NewEnhancer(
			openaiCfg.APIKey,
			openaiCfg.ModelName,
			openaiCfg.MaxTokens,
			float32(openaiCfg.Temperature),
			float32(openaiCfg.TopP),
			openaiCfg.MaxBodySize,
			f.logger,
			f.textProcessor,
		)
	default:
		return nil, fmt.Errorf("unsupported enhancer provider: %s", enhancerCfg.Provider)
	}

	if enhancerCfg.CacheEnabled {
		enhancer = enhance.NewCachedEnhancer(enhancer, enhancerCfg.CacheTTL, f.logger)
	}

	return enhancer, nil
}
