package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/domain"
)

// EventsAPI covers the /events endpoints.
type EventsAPI struct {
	c *Client
}

// GetAll lists events. Zero fields of q are not sent.
func (e *EventsAPI) GetAll(ctx context.Context, q dto.EventQuery) (*dto.EventsResponse, error) {
	var params query
	params.addInt("page", q.Page)
	params.addInt("limit", q.Limit)
	params.addString("search", q.Search)
	params.addString("status", q.Status)

	return required[dto.EventsResponse](ctx, e.c, "/events"+params.suffix(), RequestOptions{})
}

func (e *EventsAPI) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return required[domain.Event](ctx, e.c, eventPath(id), RequestOptions{})
}

func (e *EventsAPI) Create(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error) {
	return required[domain.Event](ctx, e.c, "/events", RequestOptions{Method: http.MethodPost, Body: req})
}

func (e *EventsAPI) Update(ctx context.Context, id int64, req dto.UpdateEventRequest) (*domain.Event, error) {
	return required[domain.Event](ctx, e.c, eventPath(id), RequestOptions{Method: http.MethodPatch, Body: req})
}

func (e *EventsAPI) Delete(ctx context.Context, id int64) error {
	_, err := Do[json.RawMessage](ctx, e.c, eventPath(id), RequestOptions{Method: http.MethodDelete})
	return err
}

// GetSeats lists an event's seats, optionally filtered by status.
func (e *EventsAPI) GetSeats(ctx context.Context, eventID int64, status domain.SeatStatus) ([]domain.Seat, error) {
	var params query
	params.addString("status", string(status))

	seats, err := Do[[]domain.Seat](ctx, e.c, eventPath(eventID)+"/seats"+params.suffix(), RequestOptions{})
	if err != nil {
		return nil, err
	}
	if seats == nil {
		return []domain.Seat{}, nil
	}
	return *seats, nil
}

func eventPath(id int64) string {
	return fmt.Sprintf("/events/%d", id)
}
