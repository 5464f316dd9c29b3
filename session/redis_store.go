package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/redis/go-redis/v9"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

var _ Store = (*RedisStore)(nil)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore keeps sessions as JSON values that expire with the session.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  DefaultDialTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "failed to connect to redis")
	}

	return NewRedisStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreWithClient wraps an existing client, e.g. one pointed at miniredis.
func NewRedisStoreWithClient(client redis.UniversalClient, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisStore) key(id string) string {
	return r.keyPrefix + id
}

func (r *RedisStore) Save(ctx context.Context, id string, session Session) error {
	if id == "" {
		return errors.New("session id is required")
	}

	ttl := time.Duration(0)
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return r.Delete(ctx, id)
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errs.Wrapf(err, "failed to marshal session")
	}
	return r.client.Set(ctx, r.key(id), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, errs.ErrSessionNotFound
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errs.Is(err, redis.Nil) {
			return Session{}, errs.ErrSessionNotFound
		}
		return Session{}, errs.Wrapf(err, "failed to get session")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, errs.Wrapf(err, "failed to unmarshal session")
	}
	return session, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// Close closes the Redis client connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
