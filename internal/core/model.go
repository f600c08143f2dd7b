package core

import (
	"time"
)

// Email represents a single normalized email message flowing through the
// triage pipeline. Pipeline stages mutate Annotations in place; the email
// itself is never deleted, only accumulated into the processed log.
type Email struct {
	ID          string      `json:"id"`
	Sender      string      `json:"sender"`
	Recipients  []string    `json:"recipients"`
	Subject     string      `json:"subject"`
	Body        string      `json:"body"`
	Snippet     string      `json:"snippet,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	ThreadID    string      `json:"thread_id,omitempty"`
	Processed   bool        `json:"processed"`
	Annotations Annotations `json:"annotations"`
}

// Annotations is the fixed set of derived signals written by the pipeline
// stages. Each field is optional; the zero value means the stage produced
// no signal for it.
type Annotations struct {
	// Written by the situational context stage
	Availability         float64 `json:"availability"`
	RelatedImminentEvent string  `json:"related_imminent_event,omitempty"`
	ContextUrgencyBoost  bool    `json:"context_urgency_boost,omitempty"`

	// Written by the social graph stage
	OrgRelationship        string   `json:"org_relationship,omitempty"`
	SocialImportance       string   `json:"social_importance,omitempty"`
	SharedTeam             string   `json:"shared_team,omitempty"`
	CommunicationFrequency string   `json:"communication_frequency,omitempty"`
	NetworkImportance      string   `json:"network_importance,omitempty"`
	ConnectedVia           []string `json:"connected_via,omitempty"`

	// Written by the intent classifier
	PrimaryIntent   string `json:"primary_intent,omitempty"`
	SecondaryIntent string `json:"secondary_intent,omitempty"`
	IntentUrgency   string `json:"intent_urgency,omitempty"`

	// Written by the behavior model
	PredictedPriority float64 `json:"predicted_priority"`

	// Written by the optional enhancement stage
	Sentiment         string `json:"sentiment,omitempty"`
	Summary           string `json:"summary,omitempty"`
	SuggestedResponse string `json:"suggested_response,omitempty"`
	FollowUpNeeded    bool   `json:"follow_up_needed,omitempty"`
}

// Org relationship values written by the social graph stage.
const (
	OrgDirectReport = "direct_report"
	OrgManager      = "manager"
)

// Communication frequency tiers.
const (
	FrequencyHigh   = "high"
	FrequencyMedium = "medium"
	FrequencyLow    = "low"
)

// Intent urgency levels.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// User actions recorded as feedback into the behavior model.
const (
	ActionReplied  = "replied"
	ActionArchived = "archived"
	ActionDeleted  = "deleted"
	ActionIgnored  = "ignored"
)

// CalendarEvent is a single calendar entry supplied to the context model.
type CalendarEvent struct {
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Busy      bool      `json:"busy"`
	Attendees []string  `json:"attendees,omitempty"`
}

// RawMessage is one message of a raw thread record as produced by an
// external mail source, prior to normalization.
type RawMessage struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
	Snippet string   `json:"snippet"`
	Body    string   `json:"body"`
}

// RawThread is a raw thread record as produced by an external mail source.
type RawThread struct {
	ThreadID string       `json:"threadId"`
	Subject  string       `json:"subject,omitempty"`
	Messages []RawMessage `json:"messages"`
}

// IngestedThread is a normalized email thread ready for the analyzers.
// Messages are ordered by timestamp ascending.
type IngestedThread struct {
	ThreadID      string    `json:"thread_id"`
	Subject       string    `json:"subject"`
	LatestSnippet string    `json:"latest_snippet"`
	Participants  []string  `json:"participants"`
	ReceivedAt    time.Time `json:"received_at"`
	Messages      []*Email  `json:"-"`
}

// Handling indicates whether a decision was routed to an automated
// specialist or flagged for manual attention.
type Handling string

const (
	HandlingAutomated Handling = "automated"
	HandlingManual    Handling = "manual"
)

// Decision is the per-email outcome of a pipeline run.
type Decision struct {
	EmailID     string      `json:"email_id"`
	ThreadID    string      `json:"thread_id,omitempty"`
	Annotations Annotations `json:"annotations"`
	Priority    float64     `json:"priority"`
	Handling    Handling    `json:"handling"`
	Reason      string      `json:"reason,omitempty"`
	Plan        *ActionPlan `json:"action_plan,omitempty"`
}

// ActionPlan is the structured plan produced by a specialist, or an
// escalation marker when no specialist claims the email.
type ActionPlan struct {
	EmailID    string    `json:"email_id,omitempty"`
	Specialist string    `json:"specialist,omitempty"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitempty"`

	// Specialty-specific fields, populated per plan kind.
	ProposedTimes       []string `json:"proposed_times,omitempty"`
	Context             string   `json:"context,omitempty"`
	ApprovalType        string   `json:"approval_type,omitempty"`
	RelevantDetails     []string `json:"relevant_details,omitempty"`
	SuggestedResponse   string   `json:"suggested_response,omitempty"`
	NotificationChannel string   `json:"notification_channel,omitempty"`
	UrgencyFactors      []string `json:"urgency_factors,omitempty"`
}

// TraitMemory is the long-term user trait store: a trait name mapped to
// whether it is active, plus the time it first activated. Traits are
// learned monotonically and never retracted.
type TraitMemory struct {
	UserTraits map[string]bool      `json:"userTraits"`
	Timestamps map[string]time.Time `json:"timestamps"`
}

// NewTraitMemory returns an empty trait memory.
func NewTraitMemory() *TraitMemory {
	return &TraitMemory{
		UserTraits: make(map[string]bool),
		Timestamps: make(map[string]time.Time),
	}
}

// Clone returns a deep copy of the trait memory.
func (m *TraitMemory) Clone() *TraitMemory {
	out := NewTraitMemory()
	for k, v := range m.UserTraits {
		out.UserTraits[k] = v
	}
	for k, v := range m.Timestamps {
		out.Timestamps[k] = v
	}
	return out
}

// Enhancement is the optional LLM-derived enrichment of an analysis.
type Enhancement struct {
	Sentiment         string    `json:"sentiment"`
	Summary           string    `json:"summary"`
	SuggestedResponse string    `json:"suggested_response"`
	FollowUpNeeded    bool      `json:"follow_up_needed"`
	ModelUsed         string    `json:"model_used,omitempty"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
}
