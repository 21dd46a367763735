package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BusyTracker suppresses duplicate in-flight invocations of the same action
// category on the same record. The resolver stays stateless; flags read here
// are injected into it by the caller.
type BusyTracker interface {
	Acquire(ctx context.Context, leaveID string, cat Category) (bool, error)
	Release(ctx context.Context, leaveID string, cat Category) error
	Flags(ctx context.Context, leaveID string) (BusyFlags, error)
}

type redisBusyTracker struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBusyTracker builds a Redis-backed tracker. The TTL is a safety valve so a
// crashed request cannot wedge a category forever.
func NewBusyTracker(rdb *redis.Client, ttl time.Duration) BusyTracker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisBusyTracker{rdb: rdb, ttl: ttl}
}

func busyKey(leaveID string, cat Category) string {
	return fmt.Sprintf("leave:busy:%s:%s", leaveID, cat)
}

func (t *redisBusyTracker) Acquire(ctx context.Context, leaveID string, cat Category) (bool, error) {
	return t.rdb.SetNX(ctx, busyKey(leaveID, cat), "1", t.ttl).Result()
}

func (t *redisBusyTracker) Release(ctx context.Context, leaveID string, cat Category) error {
	return t.rdb.Del(ctx, busyKey(leaveID, cat)).Err()
}

func (t *redisBusyTracker) Flags(ctx context.Context, leaveID string) (BusyFlags, error) {
	keys := make([]string, len(allCategories))
	for i, cat := range allCategories {
		keys[i] = busyKey(leaveID, cat)
	}

	vals, err := t.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return BusyFlags{}, err
	}

	var flags BusyFlags
	for i, v := range vals {
		if v == nil {
			continue
		}
		switch allCategories[i] {
		case CategoryDownloadApplication:
			flags.DownloadingApplication = true
		case CategoryReview:
			flags.Reviewing = true
		case CategoryCreateOrder:
			flags.CreatingOrder = true
		case CategoryDownloadOrder:
			flags.DownloadingOrder = true
		case CategoryComplete:
			flags.Completing = true
		case CategoryCertificate:
			flags.UpdatingCertificate = true
		}
	}
	return flags, nil
}

// NoopBusyTracker reports everything idle. Used when Redis is not configured.
type NoopBusyTracker struct{}

func (NoopBusyTracker) Acquire(context.Context, string, Category) (bool, error) { return true, nil }
func (NoopBusyTracker) Release(context.Context, string, Category) error         { return nil }
func (NoopBusyTracker) Flags(context.Context, string) (BusyFlags, error)        { return BusyFlags{}, nil }
