// Package situation tracks calendar, device and focus-mode state and
// annotates emails with situational urgency signals.
package situation

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// Focus modes recognized by the availability estimate.
const (
	FocusNormal       = "normal"
	FocusDoNotDisturb = "do_not_disturb"
	FocusFocusedWork  = "focused_work"
)

// Availability levels returned by Availability.
const (
	availabilityBusyMeeting = 0.1
	availabilityFreeSlot    = 0.4
	availabilityDND         = 0.2
	availabilityFocused     = 0.3
	availabilityDefault     = 0.9
)

// imminentWindow is how far ahead an event counts as imminent.
const imminentWindow = 2 * time.Hour

// Model tracks the user's current situational context.
type Model struct {
	mu        sync.RWMutex
	events    []core.CalendarEvent
	location  string
	device    string
	focusMode string
	logger    *zap.Logger
	now       func() time.Time
}

// NewModel creates a context model with no calendar data and a normal
// focus mode.
func NewModel(logger *zap.Logger) *Model {
	return &Model{
		focusMode: FocusNormal,
		logger:    logger,
		now:       time.Now,
	}
}

// UpdateContext replaces the calendar event list and optionally updates
// location, device and focus mode. Empty strings leave the prior value
// unchanged.
func (m *Model) UpdateContext(events []core.CalendarEvent, location, device, focusMode string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = events
	if location != "" {
		m.location = location
	}
	if device != "" {
		m.device = device
	}
	if focusMode != "" {
		m.focusMode = focusMode
	}

	m.logger.Debug("Updated situational context",
		zap.Int("calendar_events", len(events)),
		zap.String("focus_mode", m.focusMode))
}

// Availability estimates the user's current availability in [0,1]. A busy
// calendar event wins over focus mode; missing calendar data yields the
// default.
func (m *Model) Availability() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.availability(m.now())
}

func (m *Model) availability(now time.Time) float64 {
	for _, ev := range m.events {
		if !now.Before(ev.Start) && !now.After(ev.End) {
			if ev.Busy {
				return availabilityBusyMeeting
			}
			return availabilityFreeSlot
		}
	}

	switch m.focusMode {
	case FocusDoNotDisturb:
		return availabilityDND
	case FocusFocusedWork:
		return availabilityFocused
	}
	return availabilityDefault
}

// ContextualizeEmail writes situational annotations onto the email. The
// availability estimate is always written; an imminent related event adds
// the event title and an urgency boost.
func (m *Model) ContextualizeEmail(email *core.Email) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	email.Annotations.Availability = m.availability(now)

	for _, ev := range m.events {
		if ev.Start.Sub(now) >= imminentWindow {
			continue
		}
		if m.relatesTo(ev, email) {
			email.Annotations.RelatedImminentEvent = ev.Title
			email.Annotations.ContextUrgencyBoost = true
		}
	}
}

// relatesTo reports whether the email appears connected to the event:
// either the event title occurs in the subject, or an attendee identity
// occurs in the sender address.
func (m *Model) relatesTo(ev core.CalendarEvent, email *core.Email) bool {
	if strings.Contains(strings.ToLower(email.Subject), strings.ToLower(ev.Title)) {
		return true
	}
	for _, attendee := range ev.Attendees {
		if strings.Contains(email.Sender, attendee) {
			return true
		}
	}
	return false
}
