// Package audit captures key journey actions for the calling department's
// audit trail. Events are transport-agnostic so sinks can fan out.
package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose, which maps
// to retention policy downstream.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance, such as
	// an address being confirmed on behalf of a calling service.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and volume
	// reporting, such as lookups performed.
	CategoryOperations EventCategory = "operations"
)

// Action names what happened.
type Action string

const (
	ActionJourneyStarted   Action = "journey_started"
	ActionLookupPerformed  Action = "lookup_performed"
	ActionAddressConfirmed Action = "address_confirmed"
)

// Event is emitted from the journey service. Keep it flat so sinks can log or
// ship it without schema gymnastics.
type Event struct {
	Category  EventCategory     `json:"category"`
	Action    Action            `json:"action"`
	Timestamp time.Time         `json:"timestamp"`
	JourneyID string            `json:"journeyId"`
	RequestID string            `json:"requestId,omitempty"`
	CallerID  string            `json:"callerId,omitempty"`
	ClientIP  string            `json:"clientIp,omitempty"`
	UserAgent string            `json:"userAgent,omitempty"`
	Device    string            `json:"device,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// Sink receives audit events. Publish must not block the request longer than
// a local write; remote shipping belongs behind a buffering sink.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
