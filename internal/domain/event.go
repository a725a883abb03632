package domain

import "time"

// EventStatus represents the lifecycle of a concert.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusActive    EventStatus = "active"
	EventStatusClosed    EventStatus = "closed"
)

// Event is a concert with a fixed seat capacity.
type Event struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"imageUrl,omitempty"`
	AvailableSeats int         `json:"availableSeats"`
	TotalSeats     int         `json:"totalSeats"`
	Status         EventStatus `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// BookedSeats is the number of seats no longer available.
func (e Event) BookedSeats() int {
	booked := e.TotalSeats - e.AvailableSeats
	if booked < 0 {
		return 0
	}
	return booked
}

// SoldOut reports whether no seat remains.
func (e Event) SoldOut() bool {
	return e.AvailableSeats <= 0
}
