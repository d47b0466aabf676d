package mem

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionState keeps session state in redis so it survives a process restart
// and is shared between replicas.
type RedisSessionState struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisSessionState(client *redis.Client, ttl time.Duration) *RedisSessionState {
	return &RedisSessionState{client: client, ttl: ttl, prefix: "voyager:"}
}

func (r *RedisSessionState) key(kind, session string) string {
	return r.prefix + kind + session
}

func (r *RedisSessionState) SaveDraft(ctx context.Context, session string, draft []byte) error {
	return r.client.Set(ctx, r.key(draftPrefix, session), draft, r.ttl).Err()
}

func (r *RedisSessionState) LoadDraft(ctx context.Context, session string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.key(draftPrefix, session)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisSessionState) ClearDraft(ctx context.Context, session string) error {
	return r.client.Del(ctx, r.key(draftPrefix, session)).Err()
}

func (r *RedisSessionState) SetInProgress(ctx context.Context, session string) error {
	return r.client.Set(ctx, r.key(inProgressPrefix, session), "1", r.ttl).Err()
}

func (r *RedisSessionState) InProgress(ctx context.Context, session string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(inProgressPrefix, session)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisSessionState) ClearInProgress(ctx context.Context, session string) error {
	return r.client.Del(ctx, r.key(inProgressPrefix, session)).Err()
}
