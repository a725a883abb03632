package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/apiclient"
	"github.com/spec-kit/concert-frontend/internal/domain"
)

// ErrInvalidEvent rejects incomplete event forms before they reach the backend.
var ErrInvalidEvent = errors.New("กรุณากรอกข้อมูลให้ครบทุกช่อง")

const statsPageSize = 100

// Stats aggregates the admin dashboard cards.
type Stats struct {
	Events            int `json:"events"`
	TotalSeats        int `json:"totalSeats"`
	BookedSeats       int `json:"bookedSeats"`
	Bookings          int `json:"bookings"`
	CancelledBookings int `json:"cancelledBookings"`
}

// DashboardService backs the admin dashboard.
type DashboardService struct {
	client *apiclient.Client
}

// NewDashboardService builds the service.
func NewDashboardService(client *apiclient.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Events returns every event, following pagination.
func (s *DashboardService) Events(ctx context.Context) ([]domain.Event, error) {
	var all []domain.Event
	for page := 1; ; page++ {
		res, err := s.client.Events.GetAll(ctx, dto.EventQuery{Page: page, Limit: statsPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if len(res.Data) == 0 || page >= res.Meta.TotalPages {
			return all, nil
		}
	}
}

// Stats computes seat and booking totals across all events.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	evs, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.client.Bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Events: len(evs), Bookings: len(bookings)}
	for _, e := range evs {
		stats.TotalSeats += e.TotalSeats
		stats.BookedSeats += e.BookedSeats()
	}
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			stats.CancelledBookings++
		}
	}
	return stats, nil
}

// CreateEvent validates the form and creates the event.
func (s *DashboardService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" || req.TotalSeats <= 0 {
		return nil, ErrInvalidEvent
	}
	return s.client.Events.Create(ctx, req)
}

// DeleteEvent removes an event.
func (s *DashboardService) DeleteEvent(ctx context.Context, id int64) error {
	return s.client.Events.Delete(ctx, id)
}
