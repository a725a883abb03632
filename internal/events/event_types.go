package events

import (
	"time"

	"github.com/spec-kit/concert-frontend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStarted   EventType = "session_started"
	EventSessionExpired   EventType = "session_expired"
	EventSessionEnded     EventType = "session_ended"
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
)

// Event is a client-side occurrence other components react to.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	User      *domain.User `json:"user,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   any          `json:"payload,omitempty"`
}

// BookingPayload accompanies booking events.
type BookingPayload struct {
	BookingID int64  `json:"booking_id"`
	EventID   int64  `json:"event_id"`
	Title     string `json:"title"`
}
