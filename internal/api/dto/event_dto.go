package dto

import "github.com/spec-kit/concert-frontend/internal/domain"

// CreateEventRequest payload for POST /events.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	TotalSeats  int    `json:"totalSeats"`
}

// UpdateEventRequest payload for PATCH /events/:id. Nil fields are omitted.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	TotalSeats  *int    `json:"totalSeats,omitempty"`
}

// EventQuery filters GET /events. Zero values are left out of the query.
type EventQuery struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// PageMeta describes a paginated result.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// EventsResponse is the paginated list returned by GET /events.
type EventsResponse struct {
	Data []domain.Event `json:"data"`
	Meta PageMeta       `json:"meta"`
}
