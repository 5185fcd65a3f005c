package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// storeSnapshotScript writes a snapshot only if the pass that produced it is
// still the newest one for the entity. A stale pass finishing after a newer
// pass started must not overwrite the newer result.
const storeSnapshotScript = `
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if tonumber(ARGV[1]) == current then
  redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
  return 1
end
return 0
`

type Client struct {
	rdb         *redis.Client
	storeScript *redis.Script
}

// NewClient creates a new Redis client.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb:         rdb,
		storeScript: redis.NewScript(storeSnapshotScript),
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// BeginPass increments and returns the generation counter for an entity's
// reconciliation passes.
func (c *Client) BeginPass(ctx context.Context, entity string) (int64, error) {
	gen, err := c.rdb.Incr(ctx, genKey(entity)).Result()
	if err != nil {
		return 0, fmt.Errorf("begin pass: %w", err)
	}
	return gen, nil
}

// StoreSnapshot caches a serialized snapshot for an entity, guarded by the
// generation the producing pass observed. Returns false when the pass was
// superseded and the snapshot was discarded.
func (c *Client) StoreSnapshot(ctx context.Context, entity string, gen int64, payload []byte, ttl time.Duration) (bool, error) {
	result, err := c.storeScript.Run(ctx, c.rdb,
		[]string{genKey(entity), snapKey(entity)},
		gen, payload, ttl.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("store snapshot: %w", err)
	}
	stored, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected script result type")
	}
	return stored == 1, nil
}

// GetSnapshot returns the cached snapshot for an entity, or nil on a miss.
func (c *Client) GetSnapshot(ctx context.Context, entity string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, snapKey(entity)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return payload, nil
}

// InvalidateSnapshot drops the cached snapshot and bumps the generation so
// in-flight passes from before the invalidation cannot repopulate it.
func (c *Client) InvalidateSnapshot(ctx context.Context, entity string) error {
	pipe := c.rdb.Pipeline()
	pipe.Incr(ctx, genKey(entity))
	pipe.Del(ctx, snapKey(entity))
	_, err := pipe.Exec(ctx)
	return err
}

// SetIdempotencyKey stores an idempotency key with TTL
func (c *Client) SetIdempotencyKey(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("idempotency:%s", key), value, ttl).Err()
}

// CheckIdempotencyKey checks if an idempotency key exists
func (c *Client) CheckIdempotencyKey(ctx context.Context, key string) (bool, error) {
	result, err := c.rdb.Exists(ctx, fmt.Sprintf("idempotency:%s", key)).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

func genKey(entity string) string {
	return fmt.Sprintf("reconcile:gen:%s", entity)
}

func snapKey(entity string) string {
	return fmt.Sprintf("reconcile:snapshot:%s", entity)
}
