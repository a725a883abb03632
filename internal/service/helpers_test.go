package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/apiclient"
	"github.com/spec-kit/concert-frontend/internal/config"
	"github.com/spec-kit/concert-frontend/internal/events"
	"github.com/spec-kit/concert-frontend/internal/tokenstore"
)

type route struct {
	status int
	body   string
}

// backend answers by "METHOD /path?query" with the /api prefix stripped.
// Unknown routes answer 404.
type backend struct {
	srv *httptest.Server

	mu     sync.Mutex
	routes map[string]route
	hits   []string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{routes: map[string]route{}}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		key := r.Method + " " + strings.TrimPrefix(r.URL.RequestURI(), "/api")

		b.mu.Lock()
		b.hits = append(b.hits, key)
		rt, ok := b.routes[key]
		b.mu.Unlock()

		if !ok {
			rt = route{status: http.StatusNotFound, body: `{"message":"not found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_, _ = io.WriteString(w, rt.body)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) on(key string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = route{status: status, body: body}
}

func (b *backend) called(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range b.hits {
		if h == key {
			return true
		}
	}
	return false
}

type fixture struct {
	backend    *backend
	client     *apiclient.Client
	tokens     *tokenstore.Store
	dispatcher events.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := newBackend(t)
	store, err := tokenstore.New(context.Background(), tokenstore.NewMemoryBackend(), tokenstore.Options{Origin: b.srv.URL})
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	client := apiclient.New(config.APIConfig{BaseURL: b.srv.URL + "/api"}, apiclient.Dependencies{
		Tokens:           store,
		OnSessionExpired: SessionExpiredPublisher(dispatcher, zap.NewNop()),
	})
	return &fixture{backend: b, client: client, tokens: store, dispatcher: dispatcher}
}

// record captures every published event of the given types.
func record(d events.Dispatcher, types ...events.EventType) *[]events.Event {
	var mu sync.Mutex
	got := &[]events.Event{}
	for _, typ := range types {
		d.Subscribe(typ, func(_ context.Context, e events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			*got = append(*got, e)
			return nil
		})
	}
	return got
}
