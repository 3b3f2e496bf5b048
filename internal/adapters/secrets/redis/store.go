package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const DefaultPrefix = "seckill:"

// Store keeps secrets as plain redis strings below a key prefix. Entries do
// not expire; session freshness is decided by the cookies themselves.
type Store struct {
	client client
	prefix string
}

// client is the subset of *goredis.Client the store uses.
type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Close() error
}

var _ ports.SecretStore = (*Store)(nil)

// Dial connects and pings the server before handing back a store.
func Dial(ctx context.Context, addr string, password string, prefix string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return NewStore(client, prefix), nil
}

func NewStore(c *goredis.Client, prefix string) *Store {
	return newStore(c, prefix)
}

func newStore(c client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: c, prefix: prefix}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", fmt.Errorf("redis secret %q: %w", key, domain.ErrSecretNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}

	return val, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
