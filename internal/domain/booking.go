package domain

import "time"

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking links a user, an event and a seat.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	EventID     int64         `json:"eventId"`
	SeatID      int64         `json:"seatId"`
	Status      BookingStatus `json:"status"`
	BookingCode string        `json:"bookingCode,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Event       *Event        `json:"event,omitempty"`
	User        *UserSummary  `json:"user,omitempty"`
}

// Active reports whether the booking still holds its seat.
func (b Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}
