package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/seckill-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/seckill-cli/internal/adapters/secrets/pass"
	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

// Store tries its backends in order. Reads fall through on any error, writes
// stop at the first backend that accepts them.
type Store struct {
	backends []backend
}

type backend struct {
	name  string
	store ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret chain needs at least one backend")

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(stores ...ports.SecretStore) (*Store, error) {
	backends := make([]backend, 0, len(stores))
	for i, s := range stores {
		if s == nil {
			return nil, fmt.Errorf("secret backend %d is nil", i)
		}
		backends = append(backends, backend{name: backendName(i), store: s})
	}
	if len(backends) == 0 {
		return nil, errNoBackends
	}

	return &Store{backends: backends}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, b := range s.backends {
		err := b.store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldSkipFallback(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend put failed: %w", b.name, err))
	}

	return errors.Join(errs...)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	missing := 0
	for _, b := range s.backends {
		value, err := b.store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldSkipFallback(err) {
			return "", err
		}
		if errors.Is(err, domain.ErrSecretNotFound) {
			missing++
		}
		errs = append(errs, fmt.Errorf("%s backend get failed: %w", b.name, err))
	}

	if missing == len(s.backends) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", errors.Join(errs...)
}

// Delete removes the key from every backend so a stale copy cannot be read
// back through a fallback.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for _, b := range s.backends {
		err := b.store.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if shouldSkipFallback(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend delete failed: %w", b.name, err))
	}

	if deleted {
		return nil
	}

	return errors.Join(errs...)
}

func backendName(i int) string {
	switch i {
	case 0:
		return "primary"
	case 1:
		return "fallback"
	default:
		return fmt.Sprintf("fallback-%d", i)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
