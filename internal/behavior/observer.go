// Package behavior maintains the learned model of user behavior: per-sender
// response-time averages and priority contacts fed by explicit feedback
// events, plus the session-scoped bucket taxonomy and long-term trait
// inference over a thread corpus.
package behavior

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

const (
	// emaWeight is the smoothing factor applied to a new response-time
	// sample. The previous average keeps the remaining weight.
	emaWeight = 0.2

	// fastReplyHours marks a sender as a priority contact when a raw
	// reply time comes in under it.
	fastReplyHours = 1.0

	basePriority         = 0.5
	priorityContactBoost = 0.3
	threadReplyBoost     = 0.2
)

// FeedbackEvent is one observed user action, appended to the decision log.
type FeedbackEvent struct {
	EmailID   string
	ThreadID  string
	Action    string
	Timestamp time.Time
}

// SessionMemory holds the per-session bucket taxonomy and assignments.
// It is rebuilt per analysis session and replaced atomically.
type SessionMemory struct {
	BucketDefinitions []string
	ThreadToBucket    map[string]string
}

// Model is the behavioral observer. It learns exclusively from
// ObserveUserAction feedback, never from pipeline annotations. Safe for
// concurrent use.
type Model struct {
	mu               sync.Mutex
	responseTimes    map[string]float64
	priorityContacts map[string]struct{}
	decisionLog      []FeedbackEvent
	session          SessionMemory
	longTerm         *core.TraitMemory
	store            core.MemoryStore
	logger           *zap.Logger
	now              func() time.Time
}

// NewModel creates a behavior model, loading long-term trait memory from
// the store. A missing document starts a fresh memory.
func NewModel(ctx context.Context, store core.MemoryStore, logger *zap.Logger) (*Model, error) {
	mem, err := store.Load(ctx)
	if errors.Is(err, core.ErrNotFound) {
		logger.Info("No long-term memory found, starting fresh")
		mem = core.NewTraitMemory()
	} else if err != nil {
		return nil, fmt.Errorf("failed to load long-term memory: %w", err)
	}

	return &Model{
		responseTimes:    make(map[string]float64),
		priorityContacts: make(map[string]struct{}),
		longTerm:         mem,
		store:            store,
		logger:           logger,
		now:              time.Now,
	}, nil
}

// ObserveUserAction records a user action on an email. Only replies update
// the response-time average and priority-contact set; every action is
// appended to the decision log.
func (m *Model) ObserveUserAction(email *core.Email, action string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if action == core.ActionReplied {
		sample := at.Sub(email.Timestamp).Hours()

		if avg, ok := m.responseTimes[email.Sender]; ok {
			m.responseTimes[email.Sender] = (1-emaWeight)*avg + emaWeight*sample
		} else {
			m.responseTimes[email.Sender] = sample
		}

		if sample < fastReplyHours {
			m.priorityContacts[email.Sender] = struct{}{}
			m.logger.Debug("Marked priority contact",
				zap.String("sender", email.Sender),
				zap.Float64("response_hours", sample))
		}
	}

	m.decisionLog = append(m.decisionLog, FeedbackEvent{
		EmailID:   email.ID,
		ThreadID:  email.ThreadID,
		Action:    action,
		Timestamp: at,
	})
}

// PredictPriority scores an email in [0,1] from the learned model: the
// base score, a boost for priority contacts, and a boost when any email
// in the same thread was previously replied to.
func (m *Model) PredictPriority(email *core.Email) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	score := basePriority

	if _, ok := m.priorityContacts[email.Sender]; ok {
		score += priorityContactBoost
	}

	// Linear scan over the decision log; acceptable for batch usage.
	if email.ThreadID != "" {
		for _, ev := range m.decisionLog {
			if ev.Action == core.ActionReplied && ev.ThreadID == email.ThreadID {
				score += threadReplyBoost
				break
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ResponseTime returns the learned response-time average in hours for a
// sender, if any replies were observed.
func (m *Model) ResponseTime(sender string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	avg, ok := m.responseTimes[sender]
	return avg, ok
}

// IsPriorityContact reports whether the sender has ever replied to within
// the fast-reply window. Contacts are never removed.
func (m *Model) IsPriorityContact(sender string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.priorityContacts[sender]
	return ok
}

// DecisionLogLen returns the number of recorded feedback events.
func (m *Model) DecisionLogLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.decisionLog)
}
