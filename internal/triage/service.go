// Package triage sequences the analyzer stages into a single per-email
// decision and owns the canonical instances of the shared mutable models.
package triage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/behavior"
	"github.com/mikey/email-triage/internal/core"
	"github.com/mikey/email-triage/internal/ingest"
	"github.com/mikey/email-triage/internal/intent"
	"github.com/mikey/email-triage/internal/situation"
	"github.com/mikey/email-triage/internal/social"
	"github.com/mikey/email-triage/internal/specialist"
)

// Pipeline runs each email through the fixed stage order
// context → social graph → intent → behavior priority → specialist
// dispatch, and records feedback events back into the behavior model.
type Pipeline struct {
	normalizer *ingest.Normalizer
	situation  *situation.Model
	social     *social.Graph
	intents    *intent.Classifier
	behavior   *behavior.Model
	registry   *specialist.Registry
	enhancer   core.Enhancer
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	processed []*core.Email
	decisions []*core.Decision
}

// NewPipeline creates the orchestrator. The enhancer is optional; a nil
// enhancer skips the enrichment stage entirely.
func NewPipeline(
	normalizer *ingest.Normalizer,
	situationModel *situation.Model,
	socialGraph *social.Graph,
	intentClassifier *intent.Classifier,
	behaviorModel *behavior.Model,
	registry *specialist.Registry,
	enhancer core.Enhancer,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		situation:  situationModel,
		social:     socialGraph,
		intents:    intentClassifier,
		behavior:   behaviorModel,
		registry:   registry,
		enhancer:   enhancer,
		logger:     logger,
		now:        time.Now,
	}
}

// Situation returns the pipeline's context model, for callers that need
// to feed it calendar data.
func (p *Pipeline) Situation() *situation.Model { return p.situation }

// Social returns the pipeline's social graph, for callers that need to
// supply org data.
func (p *Pipeline) Social() *social.Graph { return p.social }

// Behavior returns the pipeline's behavior model.
func (p *Pipeline) Behavior() *behavior.Model { return p.behavior }

// ProcessEmail runs one email through the full stage order and returns
// the decision. The email is annotated in place, marked processed and
// appended to the processed log. No stage can fail the email; the
// pipeline always produces a decision.
func (p *Pipeline) ProcessEmail(ctx context.Context, email *core.Email) *core.Decision {
	p.situation.ContextualizeEmail(email)

	p.social.RecordCommunication(email.Sender, email.Recipients)
	p.social.AnalyzeSocialContext(email)

	p.intents.DecodeIntent(email)

	priority := p.behavior.PredictPriority(email)
	email.Annotations.PredictedPriority = priority

	// Enrichment runs after the deterministic stages so its failure can
	// never change the core decision inputs.
	p.enhance(ctx, email)

	decision := &core.Decision{
		EmailID:     email.ID,
		ThreadID:    email.ThreadID,
		Priority:    priority,
		Handling:    core.HandlingManual,
		Reason:      "No suitable specialist available",
	}

	if s, ok := p.registry.Match(email); ok {
		decision.Handling = core.HandlingAutomated
		decision.Reason = ""
		decision.Plan = s.GenerateActionPlan(email)

		p.logger.Debug("Specialist claimed email",
			zap.String("email_id", email.ID),
			zap.String("specialist", s.Specialty()))
	}

	email.Processed = true
	decision.Annotations = email.Annotations

	p.mu.Lock()
	p.processed = append(p.processed, email)
	p.decisions = append(p.decisions, decision)
	p.mu.Unlock()

	p.logger.Info("Processed email",
		zap.String("email_id", email.ID),
		zap.String("intent", email.Annotations.PrimaryIntent),
		zap.Float64("priority", priority),
		zap.String("handling", string(decision.Handling)))

	return decision
}

func (p *Pipeline) enhance(ctx context.Context, email *core.Email) {
	if p.enhancer == nil {
		return
	}

	enh, err := p.enhancer.EnhanceEmail(ctx, email)
	if err != nil {
		p.logger.Warn("Enhancement failed, continuing without it",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return
	}

	email.Annotations.Sentiment = enh.Sentiment
	email.Annotations.Summary = enh.Summary
	email.Annotations.SuggestedResponse = enh.SuggestedResponse
	email.Annotations.FollowUpNeeded = enh.FollowUpNeeded
}

// RecordUserAction looks up a processed email by id and forwards the
// action to the behavior model. An unknown id is treated as no signal.
func (p *Pipeline) RecordUserAction(emailID, action string) bool {
	p.mu.Lock()
	var target *core.Email
	for _, email := range p.processed {
		if email.ID == emailID {
			target = email
			break
		}
	}
	p.mu.Unlock()

	if target == nil {
		p.logger.Debug("User action for unknown email ignored",
			zap.String("email_id", emailID),
			zap.String("action", action))
		return false
	}

	p.behavior.ObserveUserAction(target, action, p.now())
	return true
}

// Processed returns a snapshot of the processed-email log.
func (p *Pipeline) Processed() []*core.Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*core.Email(nil), p.processed...)
}

// Decisions returns a snapshot of all decisions made so far.
func (p *Pipeline) Decisions() []*core.Decision {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*core.Decision(nil), p.decisions...)
}
