package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/adapters/enhance"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/utils"
)

// Enhancer is an implementation of the Enhancer interface using Amazon
// Bedrock.
type Enhancer struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEnhancer creates a Bedrock enhancement client from the default AWS
// configuration chain.
func NewEnhancer(
	region string,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*Enhancer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Enhancer{
		client:        bedrockruntime.NewFromConfig(awsCfg),
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

func (c *Enhancer) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.")
}

// EnhanceEmail asks the model to enrich the pipeline's analysis of the
// email.
func (c *Enhancer) EnhanceEmail(ctx context.Context, email *core.Email) (*core.Enhancement, error) {
	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := enhance.BuildPrompt(email, body)

	var payload []byte
	var err error
	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]any{
			"prompt":               prompt,
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else {
		payload, err = json.Marshal(map[string]any{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	var responseText string
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(resp.Body, &claudeResp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal model response: %w", err)
		}
		responseText = claudeResp.Completion
	} else {
		var genericResp struct {
			Completion string `json:"completion"`
			OutputText string `json:"outputText"`
		}
		if err := json.Unmarshal(resp.Body, &genericResp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal model response: %w", err)
		}
		responseText = genericResp.Completion
		if responseText == "" {
			responseText = genericResp.OutputText
		}
	}

	parsed, err := enhance.ParseResponse(responseText)
	if err != nil {
		return nil, err
	}

	return &core.Enhancement{
		Sentiment:         parsed.Sentiment,
		Summary:           parsed.Summary,
		SuggestedResponse: parsed.SuggestedResponse,
		FollowUpNeeded:    parsed.FollowUpNeeded,
		ModelUsed:         c.modelID,
		AnalyzedAt:        time.Now(),
	}, nil
}
