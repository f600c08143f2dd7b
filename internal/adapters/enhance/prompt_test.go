package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/email-triage/internal/core"
)

func TestBuildPromptIncludesAnalysisAndEmail(t *testing.T) {
	email := &core.Email{
		Sender:     "alice@x.com",
		Recipients: []string{"me@x.com", "bob@x.com", "carol@x.com"},
		Subject:    "Budget approval",
		Annotations: core.Annotations{
			PrimaryIntent:     "approval",
			IntentUrgency:     core.UrgencyMedium,
			PredictedPriority: 0.8,
		},
	}

	prompt := BuildPrompt(email, "please approve the Q3 budget")

	assert.Contains(t, prompt, "Primary intent: approval")
	assert.Contains(t, prompt, "Urgency: medium")
	assert.Contains(t, prompt, "Predicted priority: 0.80")
	assert.Contains(t, prompt, "From: alice@x.com")
	assert.Contains(t, prompt, "To: me@x.com and 2 others")
	assert.Contains(t, prompt, "Subject: Budget approval")
	assert.Contains(t, prompt, "please approve the Q3 budget")
}

func TestBuildPromptDefaultsForUnclassifiedEmail(t *testing.T) {
	prompt := BuildPrompt(&core.Email{Sender: "a@x.com"}, "")

	assert.Contains(t, prompt, "Primary intent: unknown")
	assert.Contains(t, prompt, "Urgency: low")
}

func TestParseResponseDirectJSON(t *testing.T) {
	resp, err := ParseResponse(`{"sentiment":"positive","summary":"ok","suggested_response":"Sounds good","follow_up_needed":true}`)
	require.NoError(t, err)

	assert.Equal(t, "positive", resp.Sentiment)
	assert.Equal(t, "ok", resp.Summary)
	assert.Equal(t, "Sounds good", resp.SuggestedResponse)
	assert.True(t, resp.FollowUpNeeded)
}

func TestParseResponseExtractsEmbeddedJSON(t *testing.T) {
	text := "Here is the analysis:\n```json\n{\"sentiment\":\"neutral\",\"summary\":\"meeting request\"}\n```\nLet me know if you need more."

	resp, err := ParseResponse(text)
	require.NoError(t, err)
	assert.Equal(t, "neutral", resp.Sentiment)
	assert.Equal(t, "meeting request", resp.Summary)
}

func TestParseResponseNoJSON(t *testing.T) {
	_, err := ParseResponse("I could not analyze this email.")
	assert.Error(t, err)
}
