package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupWindow = 60 * time.Second

// AlertDedup suppresses rapid duplicate SOS dispatches from the same user.
// Key format: sos:dedup:<user_id>
type AlertDedup struct {
	client *redis.Client
	window time.Duration
}

// NewAlertDedup creates an AlertDedup wrapping the given Redis client. A
// non-positive window falls back to 60 seconds.
func NewAlertDedup(client *redis.Client, window time.Duration) *AlertDedup {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &AlertDedup{client: client, window: window}
}

// IsDuplicate reports whether this user raised an alert within the window.
func (d *AlertDedup) IsDuplicate(ctx context.Context, userID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("sos dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this user's alert was dispatched (expires after the window).
func (d *AlertDedup) Mark(ctx context.Context, userID string) error {
	return d.client.Set(ctx, d.key(userID), "1", d.window).Err()
}

func (d *AlertDedup) key(userID string) string {
	return "sos:dedup:" + userID
}
