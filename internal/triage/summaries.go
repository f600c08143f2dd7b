package triage

import (
	"sort"
	"time"

	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/intent"
)

// Prioritization is the condensed priority view of a thread.
type Prioritization struct {
	Score   float64 `json:"score"`
	Intent  string  `json:"intent"`
	Urgency string  `json:"urgency"`
}

// ContextFactors surfaces the situational and social signals of the
// latest email in a thread.
type ContextFactors struct {
	RelatedEvent     string `json:"related_event,omitempty"`
	SocialImportance string `json:"social_importance,omitempty"`
	OrgRelationship  string `json:"org_relationship,omitempty"`
}

// ThreadSummary is a per-thread digest derived from the processed-email
// log, sized for direct serialization to a UI layer.
type ThreadSummary struct {
	ThreadID        string         `json:"thread_id"`
	Subject         string         `json:"subject"`
	LatestSnippet   string         `json:"latest_snippet"`
	LatestTimestamp time.Time      `json:"latest_timestamp"`
	MessageCount    int            `json:"message_count"`
	Participants    []string       `json:"participants"`
	Prioritization  Prioritization `json:"prioritization"`
	ActionsRequired bool           `json:"actions_required"`
	ContextFactors  ContextFactors `json:"context_factors"`
}

// SuggestedAction is one automated-handling decision, surfaced for review.
type SuggestedAction struct {
	EmailID       string           `json:"email_id"`
	ThreadID      string           `json:"thread_id,omitempty"`
	Subject       string           `json:"subject"`
	Sender        string           `json:"sender"`
	Timestamp     time.Time        `json:"timestamp"`
	Intent        string           `json:"intent"`
	ActionType    string           `json:"action_type"`
	Plan          *core.ActionPlan `json:"action_details"`
	PriorityScore float64          `json:"priority_score"`
}

// ThreadSummaries groups processed emails by thread and builds summary
// records, sorted by priority score descending. Emails without a thread
// id form single-message threads keyed by email id.
func (p *Pipeline) ThreadSummaries() []ThreadSummary {
	p.mu.Lock()
	groups := make(map[string][]*core.Email)
	var order []string
	for _, email := range p.processed {
		key := email.ThreadID
		if key == "" {
			key = email.ID
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], email)
	}
	p.mu.Unlock()

	summaries := make([]ThreadSummary, 0, len(groups))
	for _, key := range order {
		emails := groups[key]
		sort.SliceStable(emails, func(i, j int) bool {
			return emails[i].Timestamp.Before(emails[j].Timestamp)
		})
		latest := emails[len(emails)-1]

		summaries = append(summaries, ThreadSummary{
			ThreadID:        key,
			Subject:         emails[0].Subject,
			LatestSnippet:   snippetOf(latest),
			LatestTimestamp: latest.Timestamp,
			MessageCount:    len(emails),
			Participants:    threadParticipants(emails),
			Prioritization: Prioritization{
				Score:   latest.Annotations.PredictedPriority,
				Intent:  orDefault(latest.Annotations.PrimaryIntent, intent.Unknown),
				Urgency: orDefault(latest.Annotations.IntentUrgency, core.UrgencyLow),
			},
			ActionsRequired: actionsRequired(emails),
			ContextFactors: ContextFactors{
				RelatedEvent:     latest.Annotations.RelatedImminentEvent,
				SocialImportance: latest.Annotations.SocialImportance,
				OrgRelationship:  latest.Annotations.OrgRelationship,
			},
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Prioritization.Score > summaries[j].Prioritization.Score
	})
	return summaries
}

// SuggestedActions returns every automated-handling decision made so far,
// sorted by priority score descending.
func (p *Pipeline) SuggestedActions() []SuggestedAction {
	p.mu.Lock()
	emailsByID := make(map[string]*core.Email, len(p.processed))
	for _, email := range p.processed {
		emailsByID[email.ID] = email
	}
	decisions := append([]*core.Decision(nil), p.decisions...)
	p.mu.Unlock()

	var actions []SuggestedAction
	for _, d := range decisions {
		if d.Handling != core.HandlingAutomated || d.Plan == nil {
			continue
		}
		email := emailsByID[d.EmailID]
		if email == nil {
			continue
		}
		actions = append(actions, SuggestedAction{
			EmailID:       d.EmailID,
			ThreadID:      d.ThreadID,
			Subject:       email.Subject,
			Sender:        email.Sender,
			Timestamp:     email.Timestamp,
			Intent:        orDefault(email.Annotations.PrimaryIntent, intent.Unknown),
			ActionType:    d.Plan.Specialist,
			Plan:          d.Plan,
			PriorityScore: d.Priority,
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].PriorityScore > actions[j].PriorityScore
	})
	return actions
}

func snippetOf(email *core.Email) string {
	if email.Snippet != "" {
		return email.Snippet
	}
	if len(email.Body) > 100 {
		return email.Body[:100] + "..."
	}
	return email.Body
}

func threadParticipants(emails []*core.Email) []string {
	seen := make(map[string]struct{})
	for _, email := range emails {
		seen[email.Sender] = struct{}{}
		for _, r := range email.Recipients {
			seen[r] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for pcpt := range seen {
		out = append(out, pcpt)
	}
	sort.Strings(out)
	return out
}

func actionsRequired(emails []*core.Email) bool {
	for _, email := range emails {
		switch email.Annotations.PrimaryIntent {
		case intent.RequestAction, intent.Approval, intent.SeekInput:
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
