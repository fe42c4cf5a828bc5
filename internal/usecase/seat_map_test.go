package usecase

import (
	"sync"
	"sync/atomic"
	"testing"

	"ticket-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatMap_InvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
		_, err := NewSeatMap(size[0], size[1])
		assert.Error(t, err, "size %v", size)
	}
}

func TestSeatMap_Claim(t *testing.T) {
	seats, err := NewSeatMap(2, 2)
	require.NoError(t, err)

	ok, err := seats.Claim(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = seats.Claim(0, 0)
	require.NoError(t, err)
	assert.False(t, ok, "second claim on the same seat must fail")

	assert.Equal(t, entity.SeatingGrid{{1, 0}, {0, 0}}, seats.Snapshot())
	assert.Equal(t, 1, seats.Occupied())
}

func TestSeatMap_OutOfBounds(t *testing.T) {
	seats, err := NewSeatMap(2, 3)
	require.NoError(t, err)

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row past end", 2, 0},
		{"col past end", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := seats.Claim(tt.row, tt.col)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrSeatOutOfBounds)

			_, err = seats.Release(tt.row, tt.col)
			assert.ErrorIs(t, err, ErrSeatOutOfBounds)
		})
	}

	assert.Equal(t, 0, seats.Occupied())
}

func TestSeatMap_Release(t *testing.T) {
	seats, err := NewSeatMap(1, 1)
	require.NoError(t, err)

	ok, err := seats.Release(0, 0)
	require.NoError(t, err)
	assert.False(t, ok, "releasing a free seat is a no-op")

	_, _ = seats.Claim(0, 0)
	ok, err = seats.Release(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = seats.Claim(0, 0)
	assert.True(t, ok, "released seat can be claimed again")
}

func TestSeatMap_ConcurrentClaimsSameSeat(t *testing.T) {
	seats, err := NewSeatMap(3, 3)
	require.NoError(t, err)

	const callers = 200
	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if ok, _ := seats.Claim(1, 2); ok {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 1, seats.Occupied())
}

func TestSeatMap_SnapshotIsCopy(t *testing.T) {
	seats, err := NewSeatMap(2, 2)
	require.NoError(t, err)

	snap := seats.Snapshot()
	snap[1][1] = entity.SeatOccupied

	assert.Equal(t, 0, seats.Occupied())
	ok, _ := seats.Claim(1, 1)
	assert.True(t, ok)
}

func TestSeatMap_RestoreRoundTrip(t *testing.T) {
	src, err := NewSeatMap(3, 4)
	require.NoError(t, err)
	for _, rc := range [][2]int{{0, 0}, {1, 3}, {2, 1}} {
		_, err := src.Claim(rc[0], rc[1])
		require.NoError(t, err)
	}

	dst, err := NewSeatMap(3, 4)
	require.NoError(t, err)
	require.NoError(t, dst.Restore(src.Snapshot()))

	assert.Equal(t, src.Snapshot(), dst.Snapshot())

	assert.Error(t, dst.Restore(entity.SeatingGrid{{0}}), "mismatched grid must be rejected")
}
