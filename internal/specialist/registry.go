// Package specialist holds the narrow automated handlers. Each specialist
// claims emails matching a predicate over the pipeline annotations and
// produces a concrete action plan.
package specialist

import (
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/intent"
)

// Specialty tags.
const (
	MeetingScheduler     = "meeting_scheduler"
	ApprovalProcessor    = "approval_processor"
	InformationGatherer  = "information_gatherer"
	ActionTracker        = "action_tracker"
	EmergencyHandler     = "emergency_handler"
	ActionEscalateToUser = "escalate_to_user"
)

// Specialist is one narrow handler.
type Specialist interface {
	// Specialty returns the handler's tag.
	Specialty() string

	// CanHandle reports whether this specialist claims the email.
	CanHandle(email *core.Email) bool

	// GenerateActionPlan returns a structured plan for the email, or an
	// escalation marker if the predicate does not match.
	GenerateActionPlan(email *core.Email) *core.ActionPlan
}

// Registry is an explicit ordered list of specialists. Dispatch is
// strictly first-match in registration order; at most one plan is
// produced per email.
type Registry struct {
	specialists []Specialist
	logger      *zap.Logger
}

// NewRegistry creates a registry preloaded with the default specialists
// in their documented precedence order.
func NewRegistry(logger *zap.Logger) *Registry {
	r := &Registry{logger: logger}
	for _, s := range defaultSpecialists() {
		r.Register(s)
	}
	return r
}

// NewEmptyRegistry creates a registry with no specialists.
func NewEmptyRegistry(logger *zap.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register appends a specialist; registration order is dispatch precedence.
func (r *Registry) Register(s Specialist) {
	r.specialists = append(r.specialists, s)
}

// Match returns the first specialist claiming the email.
func (r *Registry) Match(email *core.Email) (Specialist, bool) {
	for _, s := range r.specialists {
		if s.CanHandle(email) {
			return s, true
		}
	}
	return nil, false
}

// handler is the standard specialist: an intent-or-urgency predicate plus
// a plan builder.
type handler struct {
	specialty string
	matches   func(email *core.Email) bool
	plan      func(email *core.Email, base *core.ActionPlan)
	now       func() time.Time
}

func (h *handler) Specialty() string { return h.specialty }

func (h *handler) CanHandle(email *core.Email) bool { return h.matches(email) }

func (h *handler) GenerateActionPlan(email *core.Email) *core.ActionPlan {
	if !h.CanHandle(email) {
		return &core.ActionPlan{
			Action: ActionEscalateToUser,
			Reason: "Outside specialist domain",
		}
	}

	plan := &core.ActionPlan{
		EmailID:    email.ID,
		Specialist: h.specialty,
		Timestamp:  h.now(),
	}
	if h.plan != nil {
		h.plan(email, plan)
	}
	return plan
}

func intentIs(want string) func(*core.Email) bool {
	return func(email *core.Email) bool {
		return email.Annotations.PrimaryIntent == want
	}
}

func defaultSpecialists() []Specialist {
	return []Specialist{
		&handler{
			specialty: MeetingScheduler,
			matches:   intentIs(intent.Scheduling),
			now:       time.Now,
			plan: func(email *core.Email, plan *core.ActionPlan) {
				plan.Action = "propose_meeting_times"
				plan.ProposedTimes = []string{}
				plan.Context = "Based on your availability in the next week"
			},
		},
		&handler{
			specialty: ApprovalProcessor,
			matches:   intentIs(intent.Approval),
			now:       time.Now,
			plan: func(email *core.Email, plan *core.ActionPlan) {
				plan.Action = "prepare_approval_response"
				plan.ApprovalType = "standard"
				plan.RelevantDetails = []string{}
				plan.SuggestedResponse = email.Annotations.SuggestedResponse
			},
		},
		&handler{
			specialty: InformationGatherer,
			matches:   intentIs(intent.SeekInput),
			now:       time.Now,
			plan: func(email *core.Email, plan *core.ActionPlan) {
				plan.Action = "gather_requested_input"
			},
		},
		&handler{
			specialty: ActionTracker,
			matches:   intentIs(intent.RequestAction),
			now:       time.Now,
			plan: func(email *core.Email, plan *core.ActionPlan) {
				plan.Action = "track_requested_action"
			},
		},
		&handler{
			specialty: EmergencyHandler,
			matches: func(email *core.Email) bool {
				return email.Annotations.IntentUrgency == core.UrgencyHigh
			},
			now: time.Now,
			plan: func(email *core.Email, plan *core.ActionPlan) {
				plan.Action = "immediate_notification"
				plan.NotificationChannel = "mobile_alert"
				plan.UrgencyFactors = urgencyFactors(email)
			},
		},
	}
}

// urgencyFactors lists the annotation-derived reasons an email is urgent.
func urgencyFactors(email *core.Email) []string {
	var factors []string
	if email.Annotations.PrimaryIntent == intent.Escalation ||
		email.Annotations.SecondaryIntent == intent.Escalation {
		factors = append(factors, "escalation language detected")
	}
	if email.Annotations.ContextUrgencyBoost {
		factors = append(factors, "related to an imminent calendar event")
	}
	if email.Annotations.SocialImportance == "high" {
		factors = append(factors, "socially important sender")
	}
	if len(factors) == 0 {
		factors = append(factors, "high intent urgency")
	}
	return factors
}
