package tokenstore

import (
	"context"
	"errors"
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "http://localhost:3000"

func newStore(t *testing.T, backend Backend) *Store {
	t.Helper()
	s, err := New(context.Background(), backend, Options{Origin: origin})
	require.NoError(t, err)
	return s
}

func TestStoreGetEmpty(t *testing.T) {
	s := newStore(t, NewMemoryBackend())

	token, ok := s.Get(context.Background())
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestNilStoreReadsAbsent(t *testing.T) {
	var s *Store

	token, ok := s.Get(context.Background())
	assert.False(t, ok)
	assert.Empty(t, token)
	assert.NoError(t, s.Remove(context.Background()))
	assert.Nil(t, s.Jar())
}

func TestStoreSetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, NewMemoryBackend())

	require.NoError(t, s.Set(ctx, "abc123"))
	token, ok := s.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	require.NoError(t, s.Remove(ctx))
	_, ok = s.Get(ctx)
	assert.False(t, ok)
	_, ok = s.CookieValue()
	assert.False(t, ok)
}

func TestStoreSetMirrorsCookie(t *testing.T) {
	s := newStore(t, NewMemoryBackend())

	require.NoError(t, s.Set(context.Background(), "abc123"))

	u, _ := url.Parse(origin + "/dashboard")
	cookies := s.Jar().Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token=abc123", cookies[0].String())
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	s := newStore(t, NewMemoryBackend())

	assert.NoError(t, s.Remove(context.Background()))
	assert.NoError(t, s.Remove(context.Background()))
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	s := newStore(t, NewMemoryBackend())

	assert.Error(t, s.Set(context.Background(), ""))
}

func TestNewMirrorsExistingToken(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Put(ctx, Key, "persisted"))

	s := newStore(t, backend)

	value, ok := s.CookieValue()
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestNewRequiresAbsoluteOrigin(t *testing.T) {
	_, err := New(context.Background(), NewMemoryBackend(), Options{Origin: "/relative"})
	assert.Error(t, err)
}

func TestNewUsesProvidedJar(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	s, err := New(context.Background(), NewMemoryBackend(), Options{Origin: origin, Jar: jar})
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "shared"))

	u, _ := url.Parse(origin)
	require.Len(t, jar.Cookies(u), 1)
}

type failingBackend struct {
	*MemoryBackend
	deleteErr error
	getErr    error
}

func (f *failingBackend) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *failingBackend) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryBackend.Delete(ctx, key)
}

func TestRemoveClearsCookieEvenWhenBackendFails(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{MemoryBackend: NewMemoryBackend()}
	s := newStore(t, backend)
	require.NoError(t, s.Set(ctx, "tok"))

	backend.deleteErr = errors.New("disk full")
	err := s.Remove(ctx)

	assert.ErrorContains(t, err, "disk full")
	_, ok := s.CookieValue()
	assert.False(t, ok)
}

func TestGetTreatsBackendErrorAsAbsent(t *testing.T) {
	backend := &failingBackend{MemoryBackend: NewMemoryBackend(), getErr: errors.New("boom")}
	s := newStore(t, backend)

	_, ok := s.Get(context.Background())
	assert.False(t, ok)
}
