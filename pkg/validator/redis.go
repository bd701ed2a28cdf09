package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
)

const redisTimeout = 5 * time.Second

// NewRedisPool creates a connection pool for cfg.
func NewRedisPool(cfg config.RedisConfig) *redis.Pool {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(redisTimeout),
		redis.DialReadTimeout(redisTimeout),
		redis.DialWriteTimeout(redisTimeout),
		redis.DialDatabase(cfg.DB),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	return &redis.Pool{
		MaxIdle:     cfg.MaxIdle,
		IdleTimeout: 5 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", cfg.Address, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// RedisStore keeps claims in redis. Every claim is a JSON value, indexed by a set of all
// claims, a set of pending claims and a set per recipient.
type RedisStore struct {
	pool   *redis.Pool
	prefix string
}

// NewRedisStore creates a RedisStore namespacing its keys under prefix.
func NewRedisStore(pool *redis.Pool, prefix string) *RedisStore {
	return &RedisStore{pool: pool, prefix: prefix}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = redis.DoContext(conn, ctx, "PING")
	return err
}

func (s *RedisStore) key(parts ...string) string {
	return s.prefix + ":" + strings.Join(parts, ":")
}

func (s *RedisStore) claimKey(destinationBridge string, nonce uint64) string {
	return s.key("claim", claimKey(destinationBridge, nonce))
}

func (s *RedisStore) recipientKey(recipient string) string {
	return s.key("recipient", strings.ToLower(recipient))
}

// saveScript stores the claim unless it exists and (re)indexes it in the same step, so an
// earlier save that stored the value without its index entries is repaired by a retry.
// KEYS: claim, all claims, recipient index, pending index. ARGV: claim JSON.
var saveScript = redis.NewScript(4, `
local created = redis.call('SET', KEYS[1], ARGV[1], 'NX')
local status = cjson.decode(redis.call('GET', KEYS[1])).status
redis.call('SADD', KEYS[2], KEYS[1])
redis.call('SADD', KEYS[3], KEYS[1])
if status == 'pending' then
	redis.call('SADD', KEYS[4], KEYS[1])
end
if created then
	return 1
end
return 0
`)

func (s *RedisStore) Save(ctx context.Context, c *bridge.SignedClaim) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot marshal claim: %w", err)
	}

	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	key := s.claimKey(c.DestinationBridge, c.Nonce)
	if _, err := saveScript.DoContext(ctx, conn,
		key, s.key("claims"), s.recipientKey(c.Recipient), s.key("pending"), data); err != nil {
		return fmt.Errorf("redis save claim %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, destinationBridge string, nonce uint64) (*bridge.SignedClaim, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return s.get(ctx, conn, s.claimKey(destinationBridge, nonce))
}

func (s *RedisStore) get(ctx context.Context, conn redis.Conn, key string) (*bridge.SignedClaim, error) {
	data, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", key, err)
	}
	var c bridge.SignedClaim
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("cannot unmarshal claim %s: %w", key, err)
	}
	return &c, nil
}

func (s *RedisStore) List(ctx context.Context, q bridge.ClaimQuery) ([]*bridge.SignedClaim, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	index := s.key("claims")
	switch {
	case q.Recipient != "":
		index = s.recipientKey(q.Recipient)
	case q.Status == bridge.ClaimPending:
		index = s.key("pending")
	}
	keys, err := redis.Strings(redis.DoContext(conn, ctx, "SMEMBERS", index))
	if err != nil {
		return nil, fmt.Errorf("redis SMEMBERS %s: %w", index, err)
	}
	if len(keys) == 0 {
		return []*bridge.SignedClaim{}, nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	values, err := redis.ByteSlices(redis.DoContext(conn, ctx, "MGET", args...))
	if err != nil {
		return nil, fmt.Errorf("redis MGET: %w", err)
	}

	out := make([]*bridge.SignedClaim, 0, len(values))
	for i, data := range values {
		if data == nil {
			continue
		}
		var c bridge.SignedClaim
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("cannot unmarshal claim %s: %w", keys[i], err)
		}
		if matches(&c, q) {
			out = append(out, &c)
		}
	}

	sortClaims(out)
	if limit := limitOf(q); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *RedisStore) MarkRedeemed(ctx context.Context, destinationBridge string, nonce uint64, at time.Time) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	key := s.claimKey(destinationBridge, nonce)
	c, err := s.get(ctx, conn, key)
	if err != nil {
		return err
	}
	if c.Status == bridge.ClaimRedeemed {
		return nil
	}
	c.Status = bridge.ClaimRedeemed
	c.RedeemedAt = &at
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot marshal claim: %w", err)
	}

	err = transaction(ctx, conn,
		[]any{"SET", key, data},
		[]any{"SREM", s.key("pending"), key},
	)
	if err != nil {
		return fmt.Errorf("redis mark redeemed %s: %w", key, err)
	}
	return nil
}

// transaction runs cmds in one MULTI/EXEC block.
func transaction(ctx context.Context, conn redis.Conn, cmds ...[]any) error {
	if err := conn.Send("MULTI"); err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := conn.Send(cmd[0].(string), cmd[1:]...); err != nil {
			_, _ = redis.DoContext(conn, ctx, "DISCARD")
			return err
		}
	}
	_, err := redis.DoContext(conn, ctx, "EXEC")
	return err
}

func (s *RedisStore) Cursor(ctx context.Context, name string) (uint64, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	seq, err := redis.Uint64(redis.DoContext(conn, ctx, "GET", s.key("cursor", name)))
	if errors.Is(err, redis.ErrNil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis GET cursor %s: %w", name, err)
	}
	return seq, nil
}

func (s *RedisStore) SetCursor(ctx context.Context, name string, seq uint64) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := redis.DoContext(conn, ctx, "SET", s.key("cursor", name), seq); err != nil {
		return fmt.Errorf("redis SET cursor %s: %w", name, err)
	}
	return nil
}
