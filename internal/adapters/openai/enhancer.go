package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/adapters/enhance"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/utils"
)

// Enhancer is an implementation of the Enhancer interface using OpenAI.
type Enhancer struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEnhancer creates a new OpenAI enhancement client.
func NewEnhancer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Enhancer {
	return &Enhancer{
		client:        openai.NewClient(apiKey),
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// EnhanceEmail asks the model to enrich the pipeline's analysis of the
// email.
func (c *Enhancer) EnhanceEmail(ctx context.Context, email *core.Email) (*core.Enhancement, error) {
	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := enhance.BuildPrompt(email, body)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an email triage assistant. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: "json",
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	parsed, err := enhance.ParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &core.Enhancement{
		Sentiment:         parsed.Sentiment,
		Summary:           parsed.Summary,
		SuggestedResponse: parsed.SuggestedResponse,
		FollowUpNeeded:    parsed.FollowUpNeeded,
		ModelUsed:         c.modelName,
		AnalyzedAt:        time.Now(),
	}, nil
}
