package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/config"
	"github.com/spec-kit/concert-frontend/internal/domain"
)

func TestRequestSetsJSONContentType(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := newTestClient(t, f)

	_, err := Do[json.RawMessage](context.Background(), c, "/events", RequestOptions{})
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.NotEmpty(t, req.Header.Get(RequestIDHeader))
}

func TestRequestAttachesBearerTokenWhenStored(t *testing.T) {
	f := newFakeBackend(t)
	c, store := newTestClient(t, f)
	require.NoError(t, store.Set(context.Background(), "my_token"))

	_, err := c.Auth.GetMe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer my_token", f.last(t).Header.Get("Authorization"))
}

func TestRequestOmitsAuthorizationWithoutToken(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := newTestClient(t, f)

	_, err := c.Auth.GetMe(context.Background())
	require.NoError(t, err)

	_, present := f.last(t).Header["Authorization"]
	assert.False(t, present)
}

func TestRequestSendsMirroredCookieToFrontendOrigin(t *testing.T) {
	f := newFakeBackend(t)
	c, store := newTestClient(t, f)
	require.NoError(t, store.Set(context.Background(), "cookie_token"))

	_, err := c.Auth.GetMe(context.Background())
	require.NoError(t, err)

	assert.Contains(t, f.last(t).Header.Get("Cookie"), "access_token=cookie_token")
}

func TestCallerHeadersAddAndOverride(t *testing.T) {
	f := newFakeBackend(t)
	c, store := newTestClient(t, f)
	require.NoError(t, store.Set(context.Background(), "tok"))

	_, err := Do[json.RawMessage](context.Background(), c, "/events", RequestOptions{
		Header: http.Header{
			"X-Trace":      {"abc"},
			"Content-Type": {"application/merge-patch+json"},
		},
	})
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, "abc", req.Header.Get("X-Trace"))
	assert.Equal(t, "application/merge-patch+json", req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestNoContentResolvesToNil(t *testing.T) {
	f := newFakeBackend(t)
	f.respond(http.StatusNoContent, "")
	c, _ := newTestClient(t, f)

	out, err := Do[domain.Event](context.Background(), c, "/events/1", RequestOptions{Method: http.MethodDelete})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSuccessBodyIsDecoded(t *testing.T) {
	f := newFakeBackend(t)
	f.respond(http.StatusOK, `{"id":5,"title":"Jazz Night","totalSeats":100,"availableSeats":40}`)
	c, _ := newTestClient(t, f)

	ev, err := c.Events.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ev.ID)
	assert.Equal(t, "Jazz Night", ev.Title)
	assert.Equal(t, 60, ev.BookedSeats())
	assert.Equal(t, "/events/5", f.last(t).URI)
}

func TestUndecodableSuccessBodyIsAPIError(t *testing.T) {
	f := newFakeBackend(t)
	f.respond(http.StatusOK, `<html>oops</html>`)
	c, _ := newTestClient(t, f)

	_, err := c.Events.GetByID(context.Background(), 5)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, GenericMessage, apiErr.Message)
}

func TestEmptyBodyForRequiredValueIsAPIError(t *testing.T) {
	f := newFakeBackend(t)
	f.respond(http.StatusNoContent, "")
	c, _ := newTestClient(t, f)

	_, err := c.Auth.GetMe(context.Background())

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestDefaultMessagesWithoutBodyMessage(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{400, "คำขอไม่ถูกต้อง กรุณาตรวจสอบข้อมูลอีกครั้ง"},
		{403, "คุณไม่มีสิทธิ์ในการดำเนินการนี้"},
		{404, "ไม่พบข้อมูลที่ร้องขอ"},
		{409, defaultMessages[409]},
		{422, defaultMessages[422]},
		{429, defaultMessages[429]},
		{500, "เกิดข้อผิดพลาดที่เซิร์ฟเวอร์ กรุณาลองใหม่ภายหลัง"},
		{502, defaultMessages[502]},
		{503, defaultMessages[502]},
		{504, defaultMessages[502]},
		{418, GenericMessage},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			f := newFakeBackend(t)
			f.respond(tc.status, `{}`)
			c, _ := newTestClient(t, f)

			_, err := c.Events.GetByID(context.Background(), 1)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestUnauthorizedDefaultMessageOnLogin(t *testing.T) {
	f := newFakeBackend(t)
	f.respond(http.StatusUnauthorized, `not json`)
	c, _ := newTestClient(t, f)

	_, err := Do[json.RawMessage](context.Background(), c, "/auth/login", RequestOptions{Method: http.MethodPost})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, DefaultMessage(http.StatusUnauthorized), apiErr.Message)
}

func TestServerMessageWins(t *testing.T) {
	cases := map[string]string{
		`{"message":"คุณได้จอง event นี้ไปแล้ว ไม่สามารถจองซ้ำได้"}`:    "คุณได้จอง event นี้ไปแล้ว ไม่สามารถจองซ้ำได้",
		`{"message":["title should not be empty","totalSeats must be positive"]}`: "title should not be empty, totalSeats must be positive",
		`{"error":{"code":"CONFLICT","message":"seat taken"}}`:                    "seat taken",
		`{"message":"   "}`: DefaultMessage(http.StatusBadRequest),
	}
	for body, want := range cases {
		f := newFakeBackend(t)
		f.respond(http.StatusBadRequest, body)
		c, _ := newTestClient(t, f)

		_, err := c.Bookings.GetByID(context.Background(), 1)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok, body)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status, body)
		assert.Equal(t, want, apiErr.Message, body)
	}
}

func TestTransportFailureHasStatusZero(t *testing.T) {
	store := newTestStore(t, "http://localhost:3000")
	cause := errors.New("dial tcp: lookup backend: no such host")
	c := New(config.APIConfig{BaseURL: "http://backend.invalid/api"}, Dependencies{
		Tokens: store,
		HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, cause
		})},
	})

	_, err := c.Events.GetAll(context.Background(), dto.EventQuery{})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.True(t, apiErr.Transport())
	assert.Equal(t, ConnectionFailedMessage, apiErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestUnreachableHostIsTransportFailure(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := newTestClient(t, f)
	f.srv.Close()

	_, err := c.Bookings.GetAll(context.Background())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, ConnectionFailedMessage, apiErr.Message)
}

func TestUnauthorizedPurgesTokenAndSignalsExpiry(t *testing.T) {
	f := newFakeBackend(t)
	f.respond(http.StatusUnauthorized, `{"message":"Unauthorized"}`)
	store := newTestStore(t, f.srv.URL)
	require.NoError(t, store.Set(context.Background(), "expired_token"))

	expired := 0
	c := New(config.APIConfig{BaseURL: f.srv.URL + "/api"}, Dependencies{
		Tokens:           store,
		OnSessionExpired: func(context.Context) { expired++ },
	})

	_, err := c.Auth.GetMe(context.Background())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Unauthorized", apiErr.Message)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, expired)

	_, ok = store.Get(context.Background())
	assert.False(t, ok)
	_, ok = store.CookieValue()
	assert.False(t, ok)
}

func TestUnauthorizedOnAuthEndpointsKeepsToken(t *testing.T) {
	for _, path := range []string{"/auth/login", "/auth/register"} {
		t.Run(path, func(t *testing.T) {
			f := newFakeBackend(t)
			f.respond(http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
			c, store := newTestClient(t, f)
			require.NoError(t, store.Set(context.Background(), "still_valid"))

			_, err := Do[json.RawMessage](context.Background(), c, path, RequestOptions{Method: http.MethodPost})

			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrSessionExpired))
			token, ok := store.Get(context.Background())
			assert.True(t, ok)
			assert.Equal(t, "still_valid", token)
		})
	}
}

func TestCanceledContextIsTransportFailure(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := newTestClient(t, f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Bookings.GetAll(ctx)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.ErrorIs(t, err, context.Canceled)
}
