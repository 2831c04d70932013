package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rgehrsitz/ptregime/internal/domain"
)

// RedisOptions configure the connection used by NewRedisClient
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a pooled go-redis client
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// RedisStore keeps each simulation as a JSON string and indexes a user's
// simulations in a sorted set scored by creation time (unix milliseconds).
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	Now func() time.Time
}

// NewRedisStore wraps client. A zero ttl keeps records forever.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "ptregime"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, Now: time.Now}
}

func (s *RedisStore) simKey(id string) string {
	return fmt.Sprintf("%s:sim:%s", s.prefix, id)
}

func (s *RedisStore) userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", s.prefix, userID)
}

// Ping tests the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Save(ctx context.Context, sim *domain.SavedSimulation) error {
	if err := prepare(sim, s.Now); err != nil {
		return err
	}
	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("encode simulation: %w", err)
	}

	userKey := s.userKey(sim.UserID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.simKey(sim.ID), data, s.ttl)
		pipe.ZAdd(ctx, userKey, redis.Z{
			Score:  float64(sim.CreatedAt.UnixMilli()),
			Member: sim.ID,
		})
		if s.ttl > 0 {
			pipe.Expire(ctx, userKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save simulation %s: %w", sim.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.SavedSimulation, error) {
	data, err := s.client.Get(ctx, s.simKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SavedSimulation{}, ErrNotFound
	}
	if err != nil {
		return domain.SavedSimulation{}, fmt.Errorf("get simulation %s: %w", id, err)
	}

	var sim domain.SavedSimulation
	if err := json.Unmarshal(data, &sim); err != nil {
		return domain.SavedSimulation{}, fmt.Errorf("decode simulation %s: %w", id, err)
	}
	return sim, nil
}

// List skips index entries whose record has expired and prunes them
func (s *RedisStore) List(ctx context.Context, userID string) ([]domain.SavedSimulation, error) {
	userKey := s.userKey(userID)
	ids, err := s.client.ZRange(ctx, userKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list simulations for %s: %w", userID, err)
	}
	if len(ids) == 0 {
		return []domain.SavedSimulation{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.simKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load simulations for %s: %w", userID, err)
	}

	out := make([]domain.SavedSimulation, 0, len(values))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var sim domain.SavedSimulation
		if err := json.Unmarshal([]byte(raw), &sim); err != nil {
			return nil, fmt.Errorf("decode simulation %s: %w", ids[i], err)
		}
		out = append(out, sim)
	}

	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, userKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("prune index for %s: %w", userID, err)
		}
	}
	return out, nil
}
