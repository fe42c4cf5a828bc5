package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPublisher struct {
	mock.Mock
	mu     sync.Mutex
	events []TicketIssued
}

func (m *mockPublisher) Publish(ctx context.Context, event any) error {
	args := m.Called(ctx, event)
	if err := args.Error(0); err != nil {
		return err
	}
	m.mu.Lock()
	m.events = append(m.events, event.(TicketIssued))
	m.mu.Unlock()
	return nil
}

func (m *mockPublisher) published() []TicketIssued {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TicketIssued(nil), m.events...)
}

func newBookingService(t *testing.T) usecase.BookingService {
	t.Helper()

	repo := repository.NewMemoryRepository(zap.NewNop())
	require.NoError(t, repo.Movie.Create(context.Background(), &entity.Movie{ID: 1, Title: "Heat", Genre: "crime"}))

	seats, err := usecase.NewSeatMap(3, 3)
	require.NoError(t, err)
	return usecase.NewBookingService(repo, seats, usecase.NewBookingQueue(), zap.NewNop())
}

func TestTicketDispatcher_DrainPublishesInQueueOrder(t *testing.T) {
	bookings := newBookingService(t)
	ctx := context.Background()

	first, err := bookings.RequestBooking(ctx, 1, 0, 0)
	require.NoError(t, err)
	second, err := bookings.RequestBooking(ctx, 1, 2, 1)
	require.NoError(t, err)

	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.AnythingOfType("worker.TicketIssued")).Return(nil)

	d := NewTicketDispatcher(bookings, pub, time.Second, zap.NewNop())

	assert.Equal(t, 2, d.Drain(ctx))
	assert.Equal(t, 0, bookings.QueueDepth())

	events := pub.published()
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].BookingID)
	assert.Equal(t, second.ID, events[1].BookingID)
	assert.Equal(t, 2, events[1].Row)
	assert.Equal(t, 1, events[1].Col)
	assert.Equal(t, int64(1), events[1].MovieID)
}

func TestTicketDispatcher_DrainEmptyQueue(t *testing.T) {
	pub := &mockPublisher{}
	d := NewTicketDispatcher(newBookingService(t), pub, time.Second, zap.NewNop())

	assert.Equal(t, 0, d.Drain(context.Background()))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTicketDispatcher_PublishFailureDropsBooking(t *testing.T) {
	bookings := newBookingService(t)
	ctx := context.Background()

	_, err := bookings.RequestBooking(ctx, 1, 1, 1)
	require.NoError(t, err)

	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	d := NewTicketDispatcher(bookings, pub, time.Second, zap.NewNop())

	assert.Equal(t, 0, d.Drain(ctx))
	assert.Equal(t, 0, bookings.QueueDepth())
	// the seat stays booked
	assert.Equal(t, 1, bookings.GetSeatingSnapshot()[1][1])
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestTicketDispatcher_RunStopsOnCancel(t *testing.T) {
	bookings := newBookingService(t)
	_, err := bookings.RequestBooking(context.Background(), 1, 0, 2)
	require.NoError(t, err)

	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	d := NewTicketDispatcher(bookings, pub, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(pub.published()) == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}
