package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	RequestBooking(ctx context.Context, movieID int64, row, col int) (*entity.Booking, error)
	ProcessNext(ctx context.Context) (*entity.Booking, error)
	GetSeatingSnapshot() entity.SeatingGrid
	QueueDepth() int

	// Read path for HTTP callers, served from the seating cache when present
	CachedSeating(ctx context.Context) entity.SeatingGrid

	// Startup: replay the ledger into the seat map
	RestoreSeating(ctx context.Context) (int, error)
}

type bookingService struct {
	repo  *repository.Repository
	seats *SeatMap
	queue *BookingQueue
	log   *zap.Logger

	// record serializes queue and ledger writes so both see the same order
	record sync.Mutex
	now    func() time.Time

	// bumped on every seating change, lets a cache fill detect it raced a claim
	seatingGen atomic.Uint64
	// set when an invalidation failed; cached grids are ignored until a fresh fill lands
	seatingDirty atomic.Bool
}

func NewBookingService(repo *repository.Repository, seats *SeatMap, queue *BookingQueue, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		seats: seats,
		queue: queue,
		log:   log.With(zap.String("service", "booking")),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, movieID int64, row, col int) (*entity.Booking, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to look up movie", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("%w: find movie %d: %w", ErrPersistence, movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: %d", ErrMovieNotFound, movieID)
	}

	claimed, err := s.seats.Claim(row, col)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("%w: row %d col %d", ErrSeatAlreadyBooked, row, col)
	}

	// From here on the seat stays claimed whatever happens to the writes below,
	// so they must not be cut short by the caller going away.
	ctx = context.WithoutCancel(ctx)

	s.invalidateSeating(ctx)

	s.record.Lock()
	defer s.record.Unlock()

	booking := entity.Booking{
		ID:        uuid.New(),
		MovieID:   movieID,
		Row:       row,
		Col:       col,
		CreatedAt: s.now(),
	}

	s.queue.Enqueue(booking)

	if err := s.repo.Booking.Append(ctx, &booking); err != nil {
		s.log.Error("Seat claimed but booking not recorded",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int("row", row),
			zap.Int("col", col),
		)
		return nil, fmt.Errorf("%w: append booking %s: %w", ErrPersistence, booking.ID, err)
	}

	if err := s.repo.Movie.IncrementPopularity(ctx, movieID); err != nil {
		s.log.Error("Booking recorded but popularity not updated",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("%w: update popularity of movie %d: %w", ErrPersistence, movieID, err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("movie_id", movieID),
		zap.String("movie_title", movie.Title),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Int("queue_depth", s.queue.Size()),
	)

	return &booking, nil
}

func (s *bookingService) ProcessNext(ctx context.Context) (*entity.Booking, error) {
	booking, ok := s.queue.Dequeue()
	if !ok {
		return nil, ErrNoBookingsPending
	}

	s.log.Info("Booking processed",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("movie_id", booking.MovieID),
		zap.Int("remaining", s.queue.Size()),
	)

	return &booking, nil
}

func (s *bookingService) GetSeatingSnapshot() entity.SeatingGrid {
	return s.seats.Snapshot()
}

func (s *bookingService) QueueDepth() int {
	return s.queue.Size()
}

func (s *bookingService) CachedSeating(ctx context.Context) entity.SeatingGrid {
	if s.repo.Seating == nil {
		return s.seats.Snapshot()
	}

	if !s.seatingDirty.Load() {
		grid, ok, err := s.repo.Seating.Get(ctx)
		if err != nil {
			s.log.Warn("Seating cache read failed", zap.Error(err))
		}
		if ok && len(grid) == s.seats.Rows() && grid.OccupiedCount() == s.seats.Occupied() {
			return grid
		}
	}

	gen := s.seatingGen.Load()
	grid := s.seats.Snapshot()
	if err := s.repo.Seating.Set(ctx, grid); err != nil {
		s.log.Warn("Seating cache write failed", zap.Error(err))
		return grid
	}

	if s.seatingGen.Load() != gen {
		s.invalidateSeating(ctx)
		return grid
	}
	s.seatingDirty.Store(false)

	return grid
}

func (s *bookingService) RestoreSeating(ctx context.Context) (int, error) {
	bookings, err := s.repo.Booking.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: load bookings: %w", ErrPersistence, err)
	}

	restored := 0
	for _, b := range bookings {
		claimed, err := s.seats.Claim(b.Row, b.Col)
		if errors.Is(err, ErrSeatOutOfBounds) {
			s.log.Warn("Ledger booking outside current theatre, skipped",
				zap.String("booking_id", b.ID.String()),
				zap.Int("row", b.Row),
				zap.Int("col", b.Col),
			)
			continue
		}
		if !claimed {
			s.log.Warn("Ledger holds more than one booking for a seat",
				zap.String("booking_id", b.ID.String()),
				zap.Int("row", b.Row),
				zap.Int("col", b.Col),
			)
			continue
		}
		restored++
	}

	s.invalidateSeating(ctx)

	s.log.Info("Seating restored from ledger",
		zap.Int("bookings", len(bookings)),
		zap.Int("seats_restored", restored),
	)

	return restored, nil
}

func (s *bookingService) invalidateSeating(ctx context.Context) {
	s.seatingGen.Add(1)
	if s.repo.Seating == nil {
		return
	}
	if err := s.repo.Seating.Invalidate(ctx); err != nil {
		s.seatingDirty.Store(true)
		s.log.Warn("Seating cache invalidation failed, bypassing cache until refilled", zap.Error(err))
	}
}
