package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeatCache caches the per-show seat availability list served by the
// public browse endpoint. The booking service invalidates a show's
// entry whenever a booking is created or cancelled, so a stale read
// lives at most until the next write or until the TTL expires.
type SeatCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewSeatCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *SeatCache {
	return &SeatCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "seats")),
	}
}

// InitRedis connects the Redis client and verifies connectivity.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}

func seatKey(showID uuid.UUID) string {
	return fmt.Sprintf("seats:%s", showID.String())
}

// Get loads a cached availability list into dest. The second return
// value is false on a cache miss.
func (c *SeatCache) Get(ctx context.Context, showID uuid.UUID, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, seatKey(showID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get seat cache for show %s: %w", showID, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is treated as a miss so the caller falls
		// back to the database.
		c.log.Warn("Discarding corrupt seat cache entry",
			zap.String("show_id", showID.String()),
			zap.Error(err),
		)
		c.client.Del(ctx, seatKey(showID))
		return false, nil
	}

	return true, nil
}

// Set stores an availability list under the show's key.
func (c *SeatCache) Set(ctx context.Context, showID uuid.UUID, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal seat cache for show %s: %w", showID, err)
	}

	if err := c.client.Set(ctx, seatKey(showID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set seat cache for show %s: %w", showID, err)
	}

	return nil
}

// InvalidateShow drops the cached availability for a show.
func (c *SeatCache) InvalidateShow(ctx context.Context, showID uuid.UUID) error {
	if err := c.client.Del(ctx, seatKey(showID)).Err(); err != nil {
		return fmt.Errorf("invalidate seat cache for show %s: %w", showID, err)
	}
	return nil
}
