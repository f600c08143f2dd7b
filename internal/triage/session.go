package triage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// SessionReport is the outcome of one batch analysis session: the
// per-email decisions, the session bucket taxonomy and assignments, the
// updated long-term traits, and the derived thread views.
type SessionReport struct {
	ThreadCount      int               `json:"thread_count"`
	EmailCount       int               `json:"email_count"`
	Decisions        []*core.Decision  `json:"decisions"`
	Buckets          []string          `json:"buckets"`
	Assignments      map[string]string `json:"thread_buckets"`
	Traits           *core.TraitMemory `json:"traits"`
	Summaries        []ThreadSummary   `json:"thread_summaries"`
	SuggestedActions []SuggestedAction `json:"suggested_actions"`
}

// RunSession processes a batch of raw threads end to end: normalize,
// run every message through the pipeline, rebuild the session bucket
// taxonomy, and fold the corpus into long-term trait memory. Only the
// trait update can fail; everything before it completes regardless.
func (p *Pipeline) RunSession(ctx context.Context, raw []core.RawThread) (*SessionReport, error) {
	threads := p.normalizer.NormalizeThreads(raw)

	var decisions []*core.Decision
	for _, thread := range threads {
		for _, email := range thread.Messages {
			decisions = append(decisions, p.ProcessEmail(ctx, email))
		}
	}

	buckets := p.behavior.SuggestBuckets(threads)
	assignments := p.behavior.AssignThreadsToBuckets(threads, buckets)

	traits, err := p.behavior.UpdateUserMemory(ctx, threads)
	if err != nil {
		return nil, fmt.Errorf("failed to update user memory: %w", err)
	}

	report := &SessionReport{
		ThreadCount:      len(threads),
		EmailCount:       len(decisions),
		Decisions:        decisions,
		Buckets:          buckets,
		Assignments:      assignments,
		Traits:           traits,
		Summaries:        p.ThreadSummaries(),
		SuggestedActions: p.SuggestedActions(),
	}

	p.logger.Info("Analysis session complete",
		zap.Int("threads", report.ThreadCount),
		zap.Int("emails", report.EmailCount),
		zap.Int("suggested_actions", len(report.SuggestedActions)))

	return report, nil
}
