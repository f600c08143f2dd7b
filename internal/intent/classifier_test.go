package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

func classify(subject, body string) *core.Email {
	c := NewClassifier(zap.NewNop())
	email := &core.Email{ID: "m1", Subject: subject, Body: body}
	c.DecodeIntent(email)
	return email
}

func TestDecodeIntentNoKeywords(t *testing.T) {
	email := classify("Hello", "Nothing of note here")

	assert.Equal(t, Unknown, email.Annotations.PrimaryIntent)
	assert.Empty(t, email.Annotations.SecondaryIntent)
	assert.Equal(t, core.UrgencyLow, email.Annotations.IntentUrgency)
}

func TestDecodeIntentSubjectOutweighsBody(t *testing.T) {
	// One scheduling keyword in the subject beats one feedback keyword in
	// the body.
	email := classify("Meeting next week", "I'd value your feedback")

	assert.Equal(t, Scheduling, email.Annotations.PrimaryIntent)
	assert.Equal(t, SeekInput, email.Annotations.SecondaryIntent)
}

func TestDecodeIntentUrgentApprovalClassifiesAsEscalation(t *testing.T) {
	// Escalation and approval tie on score; declaration order puts
	// escalation first.
	email := classify("URGENT: approve budget", "Need your decision today")

	assert.Equal(t, Escalation, email.Annotations.PrimaryIntent)
	assert.Equal(t, Approval, email.Annotations.SecondaryIntent)
	assert.Equal(t, core.UrgencyHigh, email.Annotations.IntentUrgency)
}

func TestDecodeIntentEscalationAnywhereYieldsHighUrgency(t *testing.T) {
	// Escalation scores but does not win; urgency is still high.
	email := classify("Please review the report", "this is urgent")

	assert.Equal(t, RequestAction, email.Annotations.PrimaryIntent)
	assert.Equal(t, core.UrgencyHigh, email.Annotations.IntentUrgency)
}

func TestDecodeIntentRequestActionMediumUrgency(t *testing.T) {
	email := classify("Please send the slides", "Could you get them to me this week")

	assert.Equal(t, RequestAction, email.Annotations.PrimaryIntent)
	assert.Equal(t, core.UrgencyMedium, email.Annotations.IntentUrgency)
}

func TestDecodeIntentApprovalMediumUrgency(t *testing.T) {
	email := classify("Budget approval", "I approve the Q3 plan, go ahead")

	assert.Equal(t, Approval, email.Annotations.PrimaryIntent)
	assert.Equal(t, core.UrgencyMedium, email.Annotations.IntentUrgency)
}

func TestDecodeIntentProvideInfoLowUrgency(t *testing.T) {
	email := classify("FYI", "attached is the latest report draft")

	assert.Equal(t, ProvideInfo, email.Annotations.PrimaryIntent)
	assert.Equal(t, core.UrgencyLow, email.Annotations.IntentUrgency)
}

func TestDecodeIntentCaseInsensitive(t *testing.T) {
	email := classify("MEETING Schedule", "")

	assert.Equal(t, Scheduling, email.Annotations.PrimaryIntent)
}

func TestDecodeIntentSubjectHitNotDoubleCountedWithBody(t *testing.T) {
	// "meeting" in both subject and body scores once, at subject weight.
	withBoth := classify("meeting", "meeting")
	onlySubject := classify("meeting", "")

	assert.Equal(t, withBoth.Annotations.PrimaryIntent, onlySubject.Annotations.PrimaryIntent)
	assert.Equal(t, Scheduling, withBoth.Annotations.PrimaryIntent)
}
