package invite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ResendThrottle rate-limits invite resends per invite using Redis. The
// throttle is best-effort: with no Redis client, or when Redis is down,
// every resend is allowed.
type ResendThrottle struct {
	client   redis.UniversalClient
	cooldown time.Duration
	logger   *zap.Logger
}

// NewResendThrottle creates a resend throttle. client may be nil.
func NewResendThrottle(client redis.UniversalClient, cooldown time.Duration, logger *zap.Logger) *ResendThrottle {
	return &ResendThrottle{
		client:   client,
		cooldown: cooldown,
		logger:   logger,
	}
}

// Allow reports whether a resend for the invite may proceed, and claims the
// cooldown window when it does.
func (t *ResendThrottle) Allow(ctx context.Context, inviteID uuid.UUID) bool {
	if t.client == nil || t.cooldown <= 0 {
		return true
	}

	key := fmt.Sprintf("invite:resend:%s", inviteID)
	ok, err := t.client.SetNX(ctx, key, time.Now().Unix(), t.cooldown).Result()
	if err != nil {
		t.logger.Warn("resend throttle check failed, allowing",
			zap.String("invite_id", inviteID.String()),
			zap.Error(err),
		)
		return true
	}
	return ok
}
