package behavior

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

const (
	minBuckets = 5
	maxBuckets = 7

	// traitThreshold is the fraction of threads that must match a trait's
	// vocabulary for the trait to activate, with a floor of one thread.
	traitThreshold = 0.1
)

// threadText is the lower-cased text a thread is scored on.
func threadText(t *core.IngestedThread) string {
	return strings.ToLower(t.Subject + " " + t.LatestSnippet)
}

// SuggestBuckets scores the bucket table against the given threads and
// returns between five and seven category labels ordered by total score
// descending, padded with defaults when too few categories score. The
// result contains no duplicates and replaces the session's bucket
// definitions.
func (m *Model) SuggestBuckets(threads []*core.IngestedThread) []string {
	scores := make(map[string]int)
	for _, t := range threads {
		text := threadText(t)
		for _, cat := range bucketTable {
			scores[cat.Name] += cat.Hits(text)
		}
	}

	// Rank scoring categories, ties broken by table declaration order.
	var ranked []string
	for _, cat := range bucketTable {
		if scores[cat.Name] > 0 {
			ranked = append(ranked, cat.Name)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	if len(ranked) > maxBuckets {
		ranked = ranked[:maxBuckets]
	}
	for _, def := range defaultBuckets {
		if len(ranked) >= minBuckets {
			break
		}
		if !containsLabel(ranked, def) {
			ranked = append(ranked, def)
		}
	}

	m.mu.Lock()
	m.session.BucketDefinitions = ranked
	m.mu.Unlock()

	m.logger.Debug("Suggested buckets",
		zap.Int("thread_count", len(threads)),
		zap.Strings("buckets", ranked))

	return ranked
}

// AssignThreadsToBuckets assigns each thread to the highest-scoring bucket
// among the supplied labels, ties broken by input order. A thread scoring
// zero everywhere falls back to Updates if present, else the first bucket,
// else Uncategorized. A nil bucket list uses the session's definitions,
// suggesting them first if needed. The resulting assignment replaces the
// session's thread→bucket map.
func (m *Model) AssignThreadsToBuckets(threads []*core.IngestedThread, buckets []string) map[string]string {
	if buckets == nil {
		m.mu.Lock()
		buckets = m.session.BucketDefinitions
		m.mu.Unlock()
		if buckets == nil {
			buckets = m.SuggestBuckets(threads)
		}
	}

	assignments := make(map[string]string, len(threads))
	for _, t := range threads {
		assignments[t.ThreadID] = assignBucket(threadText(t), buckets)
	}

	m.mu.Lock()
	m.session.ThreadToBucket = assignments
	m.mu.Unlock()

	return assignments
}

func assignBucket(text string, buckets []string) string {
	best := ""
	bestScore := 0
	for _, b := range buckets {
		cat, ok := bucketTable.Find(b)
		if !ok {
			continue
		}
		if score := cat.Hits(text); score > bestScore {
			best = b
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best
	}

	if containsLabel(buckets, BucketUpdates) {
		return BucketUpdates
	}
	if len(buckets) > 0 {
		return buckets[0]
	}
	return BucketUncategorized
}

// UpdateUserMemory infers long-term traits from the thread corpus and
// merges them into the persistent store. Traits are monotonic: once
// learned, a trait stays active, and its first-activation timestamp is
// preserved. Returns a snapshot of the updated memory.
func (m *Model) UpdateUserMemory(ctx context.Context, threads []*core.IngestedThread) (*core.TraitMemory, error) {
	counts := make(map[string]int)
	for _, t := range threads {
		text := threadText(t)
		for _, trait := range traitTable {
			if trait.Matches(text) {
				counts[trait.Name]++
			}
		}
	}

	threshold := float64(len(threads)) * traitThreshold
	if threshold < 1 {
		threshold = 1
	}
	now := m.now()

	m.mu.Lock()
	for _, trait := range traitTable {
		active := float64(counts[trait.Name]) >= threshold
		wasActive := m.longTerm.UserTraits[trait.Name]

		// Never retract a learned trait.
		m.longTerm.UserTraits[trait.Name] = wasActive || active

		if active && !wasActive {
			m.longTerm.Timestamps[trait.Name] = now
		}
	}
	snapshot := m.longTerm.Clone()
	m.mu.Unlock()

	if err := m.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist long-term memory: %w", err)
	}

	m.logger.Info("Updated long-term user memory",
		zap.Int("thread_count", len(threads)),
		zap.Int("active_traits", countActive(snapshot)))

	return snapshot, nil
}

// Session returns a copy of the current session memory.
func (m *Model) Session() SessionMemory {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := SessionMemory{
		BucketDefinitions: append([]string(nil), m.session.BucketDefinitions...),
		ThreadToBucket:    make(map[string]string, len(m.session.ThreadToBucket)),
	}
	for k, v := range m.session.ThreadToBucket {
		out.ThreadToBucket[k] = v
	}
	return out
}

func countActive(mem *core.TraitMemory) int {
	n := 0
	for _, active := range mem.UserTraits {
		if active {
			n++
		}
	}
	return n
}

func containsLabel(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
