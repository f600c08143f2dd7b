package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/mikey/email-triage/internal/adapters/enhance"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/utils"
)

// Enhancer is an implementation of the Enhancer interface using Google
// Gemini.
type Enhancer struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEnhancer creates a new Gemini enhancement client.
func NewEnhancer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*Enhancer, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Enhancer{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client.
func (c *Enhancer) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// EnhanceEmail asks the model to enrich the pipeline's analysis of the
// email.
func (c *Enhancer) EnhanceEmail(ctx context.Context, email *core.Email) (*core.Enhancement, error) {
	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := enhance.BuildPrompt(email, body)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type from Gemini")
	}

	parsed, err := enhance.ParseResponse(string(text))
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
