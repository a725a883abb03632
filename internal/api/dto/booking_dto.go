package dto

// CreateBookingRequest payload for POST /bookings.
type CreateBookingRequest struct {
	EventID int64 `json:"eventId"`
	SeatID  int64 `json:"seatId"`
}
