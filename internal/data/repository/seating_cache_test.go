package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ticket-booking/internal/data/entity"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeatingCache_RoundTrip(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := NewSeatingCache(db, "seating:test", 30*time.Second, zap.NewNop())
	ctx := context.Background()

	grid := entity.SeatingGrid{{1, 0}, {0, 1}}
	raw, err := json.Marshal(grid)
	require.NoError(t, err)

	mockRedis.ExpectSet("seating:test", raw, 30*time.Second).SetVal("OK")
	mockRedis.ExpectGet("seating:test").SetVal(string(raw))

	require.NoError(t, cache.Set(ctx, grid))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, grid, got)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestSeatingCache_Miss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := NewSeatingCache(db, "", time.Minute, zap.NewNop())

	mockRedis.ExpectGet(DefaultSeatingKey).RedisNil()

	got, ok, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestSeatingCache_GetError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := NewSeatingCache(db, "seating:test", time.Minute, zap.NewNop())

	mockRedis.ExpectGet("seating:test").SetErr(errors.New("connection refused"))

	_, ok, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "get seating cache")
}

func TestSeatingCache_Invalidate(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := NewSeatingCache(db, "seating:test", time.Minute, zap.NewNop())

	mockRedis.ExpectDel("seating:test").SetVal(1)

	require.NoError(t, cache.Invalidate(context.Background()))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
