package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxPINFailures   = 5
	pinFailureWindow = 15 * time.Minute
)

// PINLimiter throttles wallet PIN attempts: after maxPINFailures wrong PINs
// within the window, further attempts are rejected until the window expires.
// Key format: wallet:pinfail:<user_id>
type PINLimiter struct {
	client *redis.Client
}

// NewPINLimiter creates a PINLimiter wrapping the given Redis client.
func NewPINLimiter(client *redis.Client) *PINLimiter {
	return &PINLimiter{client: client}
}

// TooManyAttempts reports whether the user has exhausted their PIN attempts.
func (l *PINLimiter) TooManyAttempts(ctx context.Context, userID string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(userID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("pin limiter check: %w", err)
	}
	return n >= maxPINFailures, nil
}

// RecordFailure counts one wrong PIN. The window starts at the first failure
// and is not extended by later ones.
func (l *PINLimiter) RecordFailure(ctx context.Context, userID string) error {
	key := l.key(userID)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("pin limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, pinFailureWindow).Err(); err != nil {
			return fmt.Errorf("pin limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure count after a correct PIN.
func (l *PINLimiter) Reset(ctx context.Context, userID string) error {
	return l.client.Del(ctx, l.key(userID)).Err()
}

func (l *PINLimiter) key(userID string) string {
	return "wallet:pinfail:" + userID
}
