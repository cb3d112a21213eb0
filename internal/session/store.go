// Package session implements the server-side session store backing the
// authentication flows. Each session is a Redis hash keyed by an opaque
// session ID, holding named slots (authenticated user, pending flash
// messages, stashed form data) under a shared TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when the Redis backend cannot be reached.
var ErrUnavailable = errors.New("session store unavailable")

// takeSlotScript reads a slot and removes it in one atomic step so a
// one-shot value can never be observed twice.
const takeSlotScript = `
local v = redis.call("HGET", KEYS[1], ARGV[1])
if v then
  redis.call("HDEL", KEYS[1], ARGV[1])
end
return v
`

var takeSlotLua = redis.NewScript(takeSlotScript)

// Store is a Redis-backed session store. All operations are scoped to a
// single session ID; concurrent access across sessions is safe.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace; ttl is the session lifetime,
// refreshed on every write.
func NewStore(redis redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		redis:  redis,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":sess:" + sessionID
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Set writes a slot value and refreshes the session TTL.
func (s *Store) Set(ctx context.Context, sessionID, slot, value string) error {
	key := s.key(sessionID)

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, slot, value)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Get reads a slot value without consuming it. The second return value
// reports whether the slot was present.
func (s *Store) Get(ctx context.Context, sessionID, slot string) (string, bool, error) {
	value, err := s.redis.HGet(ctx, s.key(sessionID), slot).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, true, nil
}

// Take reads a slot value and removes it atomically, so the value is
// consumed exactly once. A missing slot is not an error.
func (s *Store) Take(ctx context.Context, sessionID, slot string) (string, bool, error) {
	result, err := takeSlotLua.Run(ctx, s.redis, []string{s.key(sessionID)}, slot).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	value, ok := result.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: invalid take script response", ErrUnavailable)
	}
	return value, true, nil
}

// Remove deletes a single slot, leaving the rest of the session intact.
func (s *Store) Remove(ctx context.Context, sessionID, slot string) error {
	if err := s.redis.HDel(ctx, s.key(sessionID), slot).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Flush destroys the whole session: every slot, in one DEL.
func (s *Store) Flush(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}
