// Package intent provides keyword-scored intent detection. Deliberately
// heuristic: a keyword hit in the subject scores double a hit in the body,
// and ties fall back to the table's declaration order.
package intent

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/keyword"
)

// Intent category labels.
const (
	RequestAction = "request_action"
	ProvideInfo   = "provide_info"
	SeekInput     = "seek_input"
	Escalation    = "escalation"
	Approval      = "approval"
	Scheduling    = "scheduling"
	Unknown       = "unknown"
)

// categories is the scoring table. Declaration order breaks ties, so
// escalation sits ahead of approval: an urgent approval request classifies
// as an escalation first.
var categories = keyword.Table{
	{Name: RequestAction, Keywords: []string{"please", "request", "action", "need you to", "could you", "by when"}},
	{Name: ProvideInfo, Keywords: []string{"fyi", "just so you know", "wanted to share", "attached is"}},
	{Name: SeekInput, Keywords: []string{"what do you think", "your thoughts", "feedback", "input", "opinion"}},
	{Name: Escalation, Keywords: []string{"urgent", "asap", "emergency", "critical", "immediately"}},
	{Name: Approval, Keywords: []string{"approve", "permission", "sign off", "go ahead", "authorization"}},
	{Name: Scheduling, Keywords: []string{"meeting", "calendar", "availability", "schedule", "time to meet"}},
}

const (
	subjectWeight = 2
	bodyWeight    = 1
)

// Classifier scores emails against the fixed intent table.
type Classifier struct {
	logger *zap.Logger
}

// NewClassifier creates a new intent classifier.
func NewClassifier(logger *zap.Logger) *Classifier {
	return &Classifier{logger: logger}
}

type scored struct {
	name  string
	score int
}

// DecodeIntent writes primary/secondary intent and an urgency class onto
// the email.
func (c *Classifier) DecodeIntent(email *core.Email) {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(email.Body)

	var ranked []scored
	escalationScored := false
	for _, cat := range categories {
		score := 0
		for _, kw := range cat.Keywords {
			// A subject hit takes precedence over a body hit for the
			// same keyword.
			switch {
			case strings.Contains(subject, kw):
				score += subjectWeight
			case strings.Contains(body, kw):
				score += bodyWeight
			}
		}
		if score == 0 {
			continue
		}
		if cat.Name == Escalation {
			escalationScored = true
		}
		ranked = append(ranked, scored{name: cat.Name, score: score})
	}

	// Stable sort keeps declaration order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) == 0 {
		email.Annotations.PrimaryIntent = Unknown
	} else {
		email.Annotations.PrimaryIntent = ranked[0].name
		if len(ranked) > 1 {
			email.Annotations.SecondaryIntent = ranked[1].name
		}
	}

	switch {
	case escalationScored:
		email.Annotations.IntentUrgency = core.UrgencyHigh
	case email.Annotations.PrimaryIntent == RequestAction ||
		email.Annotations.PrimaryIntent == Approval:
		email.Annotations.IntentUrgency = core.UrgencyMedium
	default:
		email.Annotations.IntentUrgency = core.UrgencyLow
	}

	c.logger.Debug("Decoded intent",
		zap.String("email_id", email.ID),
		zap.String("primary_intent", email.Annotations.PrimaryIntent),
		zap.String("urgency", email.Annotations.IntentUrgency))
}
