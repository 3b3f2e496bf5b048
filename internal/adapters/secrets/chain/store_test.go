package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/seckill-cli/internal/domain"
	portmocks "github.com/bnema/seckill-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sessionKey = "sessions/default.json"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, sessionKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenEveryBackendMisses(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, sessionKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), sessionKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, sessionKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), sessionKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, sessionKey, "blob").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, sessionKey, "blob").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), sessionKey, "blob"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, sessionKey, "blob").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), sessionKey, "blob"))
}

func TestStoreDeleteClearsEveryBackend(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, sessionKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, sessionKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), sessionKey))
}

func TestStoreDeleteFailsWhenNoBackendDeletes(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, sessionKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, sessionKey).Return(errors.New("disk failed")).Once()

	err := store.Delete(context.Background(), sessionKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), sessionKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackend(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.Error(t, err)

	_, err = NewStoreChecked()
	require.ErrorIs(t, err, errNoBackends)
}
