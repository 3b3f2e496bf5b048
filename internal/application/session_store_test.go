package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seckill-cli/internal/domain"
	portmocks "github.com/bnema/seckill-cli/internal/ports/mocks"
)

func TestSessionStoreRoundTripsThroughNewInstance(t *testing.T) {
	t.Parallel()

	backend := newMemSecretStore()
	clock := fixedClock{now: testNow()}
	session := domain.Session{
		Cookies: []domain.Cookie{
			{Name: "thor", Value: "abc", Domain: "jd.com", Path: "/", Expires: testNow().Add(24 * time.Hour), HTTPOnly: true},
			{Name: "wlfstk_smdl", Value: "tok", Domain: "qr.m.jd.com", Path: "/", HostOnly: true},
		},
		UserAgent: "agent/1.0",
		SavedAt:   testNow(),
	}

	require.NoError(t, NewSessionStore(backend, "", clock).Save(context.Background(), session))

	loaded, found, err := NewSessionStore(backend, "", clock).Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, session.UserAgent, loaded.UserAgent)
	assert.True(t, session.SavedAt.Equal(loaded.SavedAt))
	require.Len(t, loaded.Cookies, 2)
	assert.Equal(t, session.Cookies[0].Name, loaded.Cookies[0].Name)
	assert.True(t, session.Cookies[0].Expires.Equal(loaded.Cookies[0].Expires))
	assert.True(t, loaded.Cookies[1].HostOnly)
}

func TestSessionStoreMissingBlobIsNotAnError(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(newMemSecretStore(), "", fixedClock{now: testNow()})

	session, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, session.Empty())
}

func TestSessionStoreDropsExpiredCookiesOnLoad(t *testing.T) {
	t.Parallel()

	backend := newMemSecretStore()
	store := NewSessionStore(backend, "sessions/test.json", fixedClock{now: testNow()})
	require.NoError(t, store.Save(context.Background(), domain.Session{Cookies: []domain.Cookie{
		{Name: "old", Value: "1", Domain: "jd.com", Path: "/", Expires: testNow().Add(-time.Minute)},
		{Name: "new", Value: "2", Domain: "jd.com", Path: "/"},
	}}))

	loaded, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded.Cookies, 1)
	assert.Equal(t, "new", loaded.Cookies[0].Name)
	assert.Equal(t, loaded, store.Current())
}

func TestSessionStoreSurfacesBackendFailures(t *testing.T) {
	t.Parallel()

	backend := portmocks.NewMockSecretStore(t)
	backend.EXPECT().Get(mock.Anything, DefaultSessionKey).Return("", errors.New("gpg failed")).Once()
	backend.EXPECT().Get(mock.Anything, DefaultSessionKey).Return("{broken", nil).Once()

	store := NewSessionStore(backend, "", fixedClock{now: testNow()})

	_, _, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "gpg failed")

	_, _, err = store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode session")
}

func TestSessionStoreClearIsIdempotent(t *testing.T) {
	t.Parallel()

	backend := newMemSecretStore()
	store := NewSessionStore(backend, "", fixedClock{now: testNow()})
	require.NoError(t, store.Save(context.Background(), domain.Session{UserAgent: "ua"}))

	require.NoError(t, store.Clear(context.Background()))
	require.NoError(t, store.Clear(context.Background()))
	assert.Empty(t, store.Current().UserAgent)

	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}
