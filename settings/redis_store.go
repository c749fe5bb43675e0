package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis client used by RedisStore.
type RedisClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps one hash per session. Every access extends the TTL, so a
// session's settings expire only after it has been idle for ttl.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: "matchup:settings:"}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (models.Settings, error) {
	values, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: load session %s: %w", ErrStoreUnavailable, sessionID, err)
	}
	if len(values) > 0 {
		if err := s.client.Expire(ctx, s.key(sessionID), s.ttl).Err(); err != nil {
			return models.Settings{}, fmt.Errorf("%w: refresh ttl for session %s: %w", ErrStoreUnavailable, sessionID, err)
		}
	}
	return Parse(values), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, settings models.Settings) error {
	key := s.key(sessionID)
	encoded := Encode(settings)
	args := make([]interface{}, 0, len(encoded)*2)
	for k, v := range encoded {
		args = append(args, k, v)
	}
	if err := s.client.HSet(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("%w: save session %s: %w", ErrStoreUnavailable, sessionID, err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set ttl for session %s: %w", ErrStoreUnavailable, sessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: delete session %s: %w", ErrStoreUnavailable, sessionID, err)
	}
	return nil
}
