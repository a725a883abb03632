package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/concert-frontend/internal/config"
	"github.com/spec-kit/concert-frontend/internal/tokenstore"
)

type recordedRequest struct {
	Method string
	URI    string
	Header http.Header
	Body   string
}

type cannedResponse struct {
	status int
	body   string
}

// fakeBackend answers queued responses in order and records every request.
// With an empty queue it answers 200 {}.
type fakeBackend struct {
	srv *httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	responses []cannedResponse
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		URI:    strings.TrimPrefix(r.URL.RequestURI(), "/api"),
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	resp := cannedResponse{status: http.StatusOK, body: "{}"}
	if len(f.responses) > 0 {
		resp = f.responses[0]
		f.responses = f.responses[1:]
	}
	f.mu.Unlock()

	if resp.body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func (f *fakeBackend) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, cannedResponse{status: status, body: body})
}

func (f *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the backend")
	return f.requests[len(f.requests)-1]
}

func (f *fakeBackend) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestStore(t *testing.T, origin string) *tokenstore.Store {
	t.Helper()
	store, err := tokenstore.New(context.Background(), tokenstore.NewMemoryBackend(), tokenstore.Options{Origin: origin})
	require.NoError(t, err)
	return store
}

func newTestClient(t *testing.T, f *fakeBackend) (*Client, *tokenstore.Store) {
	t.Helper()
	store := newTestStore(t, f.srv.URL)
	c := New(config.APIConfig{BaseURL: f.srv.URL + "/api"}, Dependencies{Tokens: store})
	return c, store
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}
