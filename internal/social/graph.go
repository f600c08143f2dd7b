// Package social maintains the communication graph: who talks to whom,
// how often, and how they relate organizationally. It annotates emails
// with relationship signals relative to a configured "self" identity.
package social

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// Frequency tier cutoffs. Fixed absolute counts rather than
// population-relative percentiles; callers relying on behavioral parity
// must not change them.
const (
	highFrequencyThreshold   = 20
	mediumFrequencyThreshold = 5
)

// pairKey is a canonicalized unordered identity pair: A <= B always, so
// (a,b) and (b,a) collide.
type pairKey struct {
	A, B string
}

func canonicalPair(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{A: x, B: y}
}

// Graph tracks communication adjacency, frequency, org hierarchy and team
// membership. Safe for concurrent use.
type Graph struct {
	mu          sync.RWMutex
	self        string
	connections map[string]map[string]struct{}
	frequency   map[pairKey]int
	hierarchy   map[string]string
	teams       map[string][]string
	logger      *zap.Logger
}

// NewGraph creates an empty social graph centered on the given self
// identity.
func NewGraph(self string, logger *zap.Logger) *Graph {
	return &Graph{
		self:        self,
		connections: make(map[string]map[string]struct{}),
		frequency:   make(map[pairKey]int),
		hierarchy:   make(map[string]string),
		teams:       make(map[string][]string),
		logger:      logger,
	}
}

// RecordCommunication records a send event: both directions of every
// sender–recipient edge are added, and the pair frequency counter is
// incremented once per recipient. Recipient–recipient pairs are not
// counted.
func (g *Graph) RecordCommunication(sender string, recipients []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.connections[sender]; !ok {
		g.connections[sender] = make(map[string]struct{})
	}

	for _, recipient := range recipients {
		g.connections[sender][recipient] = struct{}{}
		if _, ok := g.connections[recipient]; !ok {
			g.connections[recipient] = make(map[string]struct{})
		}
		g.connections[recipient][sender] = struct{}{}

		g.frequency[canonicalPair(sender, recipient)]++
	}
}

// SetOrgData replaces the org hierarchy (identity → manager) and team
// membership tables wholesale.
func (g *Graph) SetOrgData(hierarchy map[string]string, teams map[string][]string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.hierarchy = hierarchy
	g.teams = teams

	g.logger.Debug("Replaced org data",
		zap.Int("hierarchy_entries", len(hierarchy)),
		zap.Int("teams", len(teams)))
}

// Frequency returns the communication count between two identities.
func (g *Graph) Frequency(a, b string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.frequency[canonicalPair(a, b)]
}

// AnalyzeSocialContext annotates the email with relationship signals:
// org relationship, shared team, frequency tier, and bridge detection for
// low-frequency senders connected to high-frequency contacts.
func (g *Graph) AnalyzeSocialContext(email *core.Email) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sender := email.Sender

	if g.hierarchy[sender] == g.self {
		email.Annotations.OrgRelationship = core.OrgDirectReport
	}
	if manager, ok := g.hierarchy[g.self]; ok && sender == manager {
		email.Annotations.OrgRelationship = core.OrgManager
		email.Annotations.SocialImportance = "high"
	}

	// Team names are checked in sorted order so repeated runs annotate
	// the same team when the sender shares several.
	for _, team := range sortedKeys(g.teams) {
		members := g.teams[team]
		if contains(members, sender) && contains(members, g.self) {
			email.Annotations.SharedTeam = team
		}
	}

	freq := g.frequency[canonicalPair(sender, g.self)]
	switch {
	case freq > highFrequencyThreshold:
		email.Annotations.CommunicationFrequency = core.FrequencyHigh
	case freq > mediumFrequencyThreshold:
		email.Annotations.CommunicationFrequency = core.FrequencyMedium
	default:
		email.Annotations.CommunicationFrequency = core.FrequencyLow

		// A rarely-seen sender who is connected to the user's frequent
		// contacts may still matter.
		var bridges []string
		for contact := range g.connections[sender] {
			if g.frequency[canonicalPair(contact, g.self)] > highFrequencyThreshold {
				bridges = append(bridges, contact)
			}
		}
		if len(bridges) > 0 {
			sort.Strings(bridges)
			email.Annotations.NetworkImportance = "potential_bridge"
			email.Annotations.ConnectedVia = bridges
		}
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
