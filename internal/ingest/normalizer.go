package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// Normalizer turns raw per-message thread records into canonical Email
// and IngestedThread entities. Malformed input degrades to safe defaults
// rather than failing: triage must always produce a decision.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewNormalizer creates a new normalizer.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{
		logger: logger,
		now:    time.Now,
	}
}

// NormalizeThreads converts raw thread records into normalized threads.
// Messages are ordered by timestamp ascending within each thread; threads
// are ordered by received time, most recent first. Empty threads are
// skipped.
func (n *Normalizer) NormalizeThreads(raw []core.RawThread) []*core.IngestedThread {
	threads := make([]*core.IngestedThread, 0, len(raw))

	for _, rt := range raw {
		if len(rt.Messages) == 0 {
			continue
		}

		messages := make([]*core.Email, 0, len(rt.Messages))
		for _, rm := range rt.Messages {
			messages = append(messages, n.normalizeMessage(rm, rt.ThreadID))
		}
		sort.SliceStable(messages, func(i, j int) bool {
			return messages[i].Timestamp.Before(messages[j].Timestamp)
		})

		latest := messages[len(messages)-1]
		threads = append(threads, &core.IngestedThread{
			ThreadID:      rt.ThreadID,
			Subject:       messages[0].Subject,
			LatestSnippet: latest.Snippet,
			Participants:  participants(messages),
			ReceivedAt:    latest.Timestamp,
			Messages:      messages,
		})
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].ReceivedAt.After(threads[j].ReceivedAt)
	})

	n.logger.Debug("Normalized raw threads",
		zap.Int("raw_count", len(raw)),
		zap.Int("thread_count", len(threads)))

	return threads
}

// normalizeMessage converts one raw message into an Email. Missing ids are
// generated; unparseable dates fall back to the current time.
func (n *Normalizer) normalizeMessage(rm core.RawMessage, threadID string) *core.Email {
	id := rm.ID
	if id == "" {
		id = uuid.NewString()
	}

	ts, err := parseDate(rm.Date)
	if err != nil {
		n.logger.Warn("Failed to parse message date, using current time",
			zap.String("message_id", id),
			zap.String("date", rm.Date),
			zap.Error(err))
		ts = n.now()
	}

	recipients := make([]string, 0, len(rm.To)+len(rm.Cc))
	recipients = append(recipients, rm.To...)
	recipients = append(recipients, rm.Cc...)

	snippet := rm.Snippet
	if snippet == "" {
		snippet = makeSnippet(rm.Body)
	}

	return &core.Email{
		ID:         id,
		Sender:     rm.From,
		Recipients: recipients,
		Subject:    rm.Subject,
		Body:       rm.Body,
		Snippet:    snippet,
		Timestamp:  ts,
		ThreadID:   threadID,
	}
}

// parseDate parses an ISO-8601 date, accepting a trailing "Z" as UTC.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	// Dates without an explicit offset are treated as UTC.
	if ts, err := time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(s, "Z")); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// participants collects the unique sender and recipient identities across
// the thread, sorted for determinism.
func participants(messages []*core.Email) []string {
	seen := make(map[string]struct{})
	for _, msg := range messages {
		if msg.Sender != "" {
			seen[msg.Sender] = struct{}{}
		}
		for _, r := range msg.Recipients {
			if r != "" {
				seen[r] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

const snippetLen = 100

// makeSnippet derives a short snippet from a message body.
func makeSnippet(body string) string {
	if len(body) <= snippetLen {
		return body
	}
	return body[:snippetLen] + "..."
}

// threadFile is the on-disk shape of a raw thread dump.
type threadFile struct {
	Threads []core.RawThread `json:"threads"`
}

// LoadThreads reads raw thread records from a JSON file of the form
// {"threads": [...]}.
func LoadThreads(path string) ([]core.RawThread, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thread file: %w", err)
	}

	var f threadFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse thread file: %w", err)
	}

	return f.Threads, nil
}
