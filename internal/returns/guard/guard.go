package guard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tokoparts/backoffice/pkg/logger"
)

// IdempotencyGuard enforces single invocation of a return call. The return
// engine itself double-applies replays, so the caller layer claims a key per
// request payload before dispatching.
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a guard. A nil client disables guarding (every claim succeeds).
func New(client *redis.Client, ttl time.Duration) *IdempotencyGuard {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &IdempotencyGuard{client: client, ttl: ttl}
}

// Key derives a deterministic guard key from the request identity and payload.
func Key(scope string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("guard:%s:%s", scope, hex.EncodeToString(sum[:]))
}

// Claim attempts to take the key. It returns false when the same request was
// already claimed inside the TTL window. Redis being down fails open: the
// guard is a replay shield, not a correctness gate for first invocations.
func (g *IdempotencyGuard) Claim(ctx context.Context, key string) bool {
	if g.client == nil {
		return true
	}

	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("key", key).
			Msg("Idempotency guard unavailable, allowing request")
		return true
	}
	if !ok {
		logger.Warn(ctx).
			Str("key", key).
			Msg("Duplicate return request blocked")
	}
	return ok
}

// Release frees a claimed key, letting a failed request be retried.
func (g *IdempotencyGuard) Release(ctx context.Context, key string) {
	if g.client == nil {
		return
	}
	if err := g.client.Del(ctx, key).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to release guard key")
	}
}
