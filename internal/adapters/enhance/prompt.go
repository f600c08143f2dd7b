// Package enhance holds the pieces shared by the enhancement clients: the
// prompt construction, the response shape, and a caching decorator.
package enhance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/email-triage/internal/core"
)

// Response is the structured JSON the enhancement models are asked to
// return.
type Response struct {
	Sentiment         string `json:"sentiment"`
	Summary           string `json:"summary"`
	SuggestedResponse string `json:"suggested_response"`
	FollowUpNeeded    bool   `json:"follow_up_needed"`
}

const promptFormat = `You are an email triage assistant. A deterministic pipeline has already
classified the email below; your job is to enrich that analysis.
Respond with a JSON object containing:
- sentiment: one of "positive", "neutral", "negative"
- summary: one-sentence summary of the email
- suggested_response: a short draft reply, or "" if none is appropriate
- follow_up_needed: boolean

Pipeline analysis:
Primary intent: %s
Urgency: %s
Predicted priority: %.2f

Email:
From: %s
To: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// BuildPrompt renders the enhancement prompt for an email, with the body
// already truncated by the caller.
func BuildPrompt(email *core.Email, body string) string {
	to := ""
	if len(email.Recipients) > 0 {
		to = email.Recipients[0]
		if len(email.Recipients) > 1 {
			to += fmt.Sprintf(" and %d others", len(email.Recipients)-1)
		}
	}

	primary := email.Annotations.PrimaryIntent
	if primary == "" {
		primary = "unknown"
	}
	urgency := email.Annotations.IntentUrgency
	if urgency == "" {
		urgency = core.UrgencyLow
	}

	return fmt.Sprintf(promptFormat,
		primary,
		urgency,
		email.Annotations.PredictedPriority,
		email.Sender,
		to,
		email.Subject,
		body,
	)
}

// ParseResponse decodes the model output, tolerating text around the JSON
// object.
func ParseResponse(text string) (*Response, error) {
	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err == nil {
		return &resp, nil
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return &resp, nil
}
