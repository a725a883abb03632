package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/apiclient"
	"github.com/spec-kit/concert-frontend/internal/domain"
	"github.com/spec-kit/concert-frontend/internal/events"
)

var (
	ErrSoldOut          = errors.New("ที่นั่งเต็มแล้ว")
	ErrNoSeatsAvailable = errors.New("ไม่มีที่นั่งว่างแล้ว")
	ErrNoActiveBooking  = errors.New("ไม่พบการจองที่ยังใช้งานอยู่สำหรับ event นี้")
)

// ReservationService implements the reserve and cancel flows of the home page.
type ReservationService struct {
	client     *apiclient.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewReservationService builds the service.
func NewReservationService(client *apiclient.Client, dispatcher events.Dispatcher, logger *zap.Logger) *ReservationService {
	return &ReservationService{client: client, dispatcher: dispatcher, logger: logger}
}

// Reserve books the first available seat of event. Sold-out events are
// rejected without a backend call.
func (s *ReservationService) Reserve(ctx context.Context, event domain.Event) (*domain.Booking, error) {
	if event.SoldOut() {
		return nil, ErrSoldOut
	}

	seats, err := s.client.Events.GetSeats(ctx, event.ID, domain.SeatStatusAvailable)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, ErrNoSeatsAvailable
	}

	booking, err := s.client.Bookings.Create(ctx, dto.CreateBookingRequest{EventID: event.ID, SeatID: seats[0].ID})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventBookingCreated, booking, event.Title)
	return booking, nil
}

// ReserveByID loads the event and reserves a seat in it.
func (s *ReservationService) ReserveByID(ctx context.Context, eventID int64) (*domain.Booking, error) {
	event, err := s.client.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.Reserve(ctx, *event)
}

// Cancel cancels a booking by id.
func (s *ReservationService) Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.client.Bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventBookingCancelled, booking, "")
	return booking, nil
}

// CancelForEvent cancels the caller's active booking for eventID.
func (s *ReservationService) CancelForEvent(ctx context.Context, eventID int64) (*domain.Booking, error) {
	active, err := s.ActiveBookingsByEvent(ctx)
	if err != nil {
		return nil, err
	}
	bookingID, ok := active[eventID]
	if !ok {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrNoActiveBooking)
	}
	return s.Cancel(ctx, bookingID)
}

// ActiveBookingsByEvent maps event id to the id of the caller's
// non-cancelled booking.
func (s *ReservationService) ActiveBookingsByEvent(ctx context.Context) (map[int64]int64, error) {
	bookings, err := s.client.Bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active := make(map[int64]int64, len(bookings))
	for _, b := range bookings {
		if b.Active() {
			active[b.EventID] = b.ID
		}
	}
	return active, nil
}

// History returns the caller's bookings, newest first.
func (s *ReservationService) History(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.client.Bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (s *ReservationService) publish(ctx context.Context, eventType events.EventType, booking *domain.Booking, title string) {
	if title == "" && booking.Event != nil {
		title = booking.Event.Title
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		Payload: events.BookingPayload{BookingID: booking.ID, EventID: booking.EventID, Title: title},
	})
	if err != nil {
		s.logger.Warn("booking handlers failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
