package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/domain"
)

// BookingsAPI covers the /bookings endpoints.
type BookingsAPI struct {
	c *Client
}

// GetAll returns the current user's bookings.
func (b *BookingsAPI) GetAll(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := Do[[]domain.Booking](ctx, b.c, "/bookings", RequestOptions{})
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return *bookings, nil
}

func (b *BookingsAPI) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return required[domain.Booking](ctx, b.c, bookingPath(id), RequestOptions{})
}

func (b *BookingsAPI) Create(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error) {
	return required[domain.Booking](ctx, b.c, "/bookings", RequestOptions{Method: http.MethodPost, Body: req})
}

func (b *BookingsAPI) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	return required[domain.Booking](ctx, b.c, bookingPath(id)+"/cancel", RequestOptions{Method: http.MethodPatch})
}

func bookingPath(id int64) string {
	return fmt.Sprintf("/bookings/%d", id)
}
