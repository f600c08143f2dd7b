package specialist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/intent"
)

func emailWithIntent(primary, urgency string) *core.Email {
	return &core.Email{
		ID: "m1",
		Annotations: core.Annotations{
			PrimaryIntent: primary,
			IntentUrgency: urgency,
		},
	}
}

func TestMatchDispatchesByIntent(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	cases := []struct {
		primary   string
		urgency   string
		specialty string
	}{
		{intent.Scheduling, core.UrgencyLow, MeetingScheduler},
		{intent.Approval, core.UrgencyMedium, ApprovalProcessor},
		{intent.SeekInput, core.UrgencyLow, InformationGatherer},
		{intent.RequestAction, core.UrgencyMedium, ActionTracker},
		{intent.Escalation, core.UrgencyHigh, EmergencyHandler},
	}

	for _, tc := range cases {
		s, ok := r.Match(emailWithIntent(tc.primary, tc.urgency))
		require.True(t, ok, "no specialist for %s", tc.primary)
		assert.Equal(t, tc.specialty, s.Specialty())
	}
}

func TestMatchFirstRegisteredWins(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	// Scheduling intent with high urgency: the scheduler is registered
	// before the emergency handler, so it claims the email.
	s, ok := r.Match(emailWithIntent(intent.Scheduling, core.UrgencyHigh))
	require.True(t, ok)
	assert.Equal(t, MeetingScheduler, s.Specialty())
}

func TestMatchNoSpecialist(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	_, ok := r.Match(emailWithIntent(intent.ProvideInfo, core.UrgencyLow))
	assert.False(t, ok)

	_, ok = NewEmptyRegistry(zap.NewNop()).Match(emailWithIntent(intent.Scheduling, core.UrgencyLow))
	assert.False(t, ok)
}

func TestGenerateActionPlanMeetingScheduler(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	email := emailWithIntent(intent.Scheduling, core.UrgencyLow)

	s, ok := r.Match(email)
	require.True(t, ok)

	plan := s.GenerateActionPlan(email)
	assert.Equal(t, "m1", plan.EmailID)
	assert.Equal(t, MeetingScheduler, plan.Specialist)
	assert.Equal(t, "propose_meeting_times", plan.Action)
	assert.NotNil(t, plan.ProposedTimes)
	assert.False(t, plan.Timestamp.IsZero())
}

func TestGenerateActionPlanApprovalCarriesSuggestedResponse(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	email := emailWithIntent(intent.Approval, core.UrgencyMedium)
	email.Annotations.SuggestedResponse = "Approved, go ahead."

	s, ok := r.Match(email)
	require.True(t, ok)

	plan := s.GenerateActionPlan(email)
	assert.Equal(t, "prepare_approval_response", plan.Action)
	assert.Equal(t, "standard", plan.ApprovalType)
	assert.Equal(t, "Approved, go ahead.", plan.SuggestedResponse)
}

func TestGenerateActionPlanEmergencyFactors(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	email := emailWithIntent(intent.Escalation, core.UrgencyHigh)
	email.Annotations.ContextUrgencyBoost = true
	email.Annotations.SocialImportance = "high"

	s, ok := r.Match(email)
	require.True(t, ok)

	plan := s.GenerateActionPlan(email)
	assert.Equal(t, "immediate_notification", plan.Action)
	assert.Equal(t, "mobile_alert", plan.NotificationChannel)
	assert.Equal(t, []string{
		"escalation language detected",
		"related to an imminent calendar event",
		"socially important sender",
	}, plan.UrgencyFactors)
}

func TestGenerateActionPlanEmergencyDefaultFactor(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	email := emailWithIntent(intent.ProvideInfo, core.UrgencyHigh)

	s, ok := r.Match(email)
	require.True(t, ok)
	assert.Equal(t, EmergencyHandler, s.Specialty())

	plan := s.GenerateActionPlan(email)
	assert.Equal(t, []string{"high intent urgency"}, plan.UrgencyFactors)
}

func TestGenerateActionPlanEscalatesOutsideDomain(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	s, ok := r.Match(emailWithIntent(intent.Scheduling, core.UrgencyLow))
	require.True(t, ok)

	plan := s.GenerateActionPlan(emailWithIntent(intent.ProvideInfo, core.UrgencyLow))
	assert.Equal(t, ActionEscalateToUser, plan.Action)
	assert.Equal(t, "Outside specialist domain", plan.Reason)
	assert.Empty(t, plan.Specialist)
}
