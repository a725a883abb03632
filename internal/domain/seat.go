package domain

import "time"

// SeatStatus is the allocation state of a seat.
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusReserved  SeatStatus = "reserved"
)

// Seat is one allocatable unit of an event's capacity.
type Seat struct {
	ID        int64      `json:"id"`
	VenueID   int64      `json:"venueId"`
	EventID   int64      `json:"eventId"`
	Section   string     `json:"section"`
	Row       string     `json:"row"`
	Number    string     `json:"number"`
	Status    SeatStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
