package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"placewise/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "poi:session:"

// RedisContextStore keeps session contexts as JSON values with a TTL.
// Updates run inside an optimistic WATCH/MULTI transaction so concurrent
// same-session requests never interleave their read-modify-writes.
type RedisContextStore struct {
	client     *redis.Client
	ttl        time.Duration
	maxHistory int
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration, maxHistory int) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl, maxHistory: maxHistory}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	var sc models.SessionContext
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &sc, nil
}

func (s *RedisContextStore) Create(ctx context.Context, sessionID, userID string) (*models.SessionContext, error) {
	sc := newSessionContext(sessionID, userID, time.Now().UTC())
	if err := s.set(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Update loads, mutates and rewrites the session under WATCH. On a write
// conflict the read-modify-write is retried from scratch.
func (s *RedisContextStore) Update(ctx context.Context, sessionID string, mutate func(*models.SessionContext)) (*models.SessionContext, error) {
	key := sessionKey(sessionID)
	var updated *models.SessionContext

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		sc := newSessionContext(sessionID, "", time.Now().UTC())
		if err != redis.Nil {
			sc = &models.SessionContext{}
			if uerr := json.Unmarshal([]byte(data), sc); uerr != nil {
				return uerr
			}
		}
		mutate(sc)
		sc.LastAccessed = time.Now().UTC()
		applyCaps(sc, s.maxHistory)

		b, err := json.Marshal(sc)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err == nil {
			updated = sc
		}
		return err
	}

	const maxRetries = 3
	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return nil, fmt.Errorf("update session %s: %w", sessionID, err)
	}
	return nil, fmt.Errorf("update session %s: too many write conflicts", sessionID)
}

func (s *RedisContextStore) Touch(ctx context.Context, sessionID string) error {
	return s.client.Expire(ctx, sessionKey(sessionID), s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *RedisContextStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisContextStore) set(ctx context.Context, sc *models.SessionContext) error {
	b, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sc.SessionID, err)
	}
	return s.client.Set(ctx, sessionKey(sc.SessionID), b, s.ttl).Err()
}
