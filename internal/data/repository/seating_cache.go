package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ticket-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultSeatingKey = "seating:snapshot"

type seatingCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
	log    *zap.Logger
}

func NewSeatingCache(client redis.Cmdable, key string, ttl time.Duration, log *zap.Logger) SeatingCache {
	if key == "" {
		key = DefaultSeatingKey
	}
	return &seatingCache{
		client: client,
		key:    key,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "seating_cache")),
	}
}

func (c *seatingCache) Get(ctx context.Context) (entity.SeatingGrid, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get seating cache: %w", err)
	}

	var grid entity.SeatingGrid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, false, fmt.Errorf("decode seating cache: %w", err)
	}

	return grid, true, nil
}

func (c *seatingCache) Set(ctx context.Context, grid entity.SeatingGrid) error {
	raw, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("encode seating cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set seating cache: %w", err)
	}

	c.log.Debug("Seating cached", zap.Int("occupied", grid.OccupiedCount()))
	return nil
}

func (c *seatingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate seating cache: %w", err)
	}
	return nil
}
