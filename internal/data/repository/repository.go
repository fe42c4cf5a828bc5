package repository

import (
	"context"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error

	// Popularity is bumped once per accepted booking
	IncrementPopularity(ctx context.Context, id int64) error
}

// BookingRepository is the append-only booking ledger.
type BookingRepository interface {
	Append(ctx context.Context, booking *entity.Booking) error
	LoadAll(ctx context.Context) ([]entity.Booking, error)
}

type SeatingCache interface {
	Get(ctx context.Context) (entity.SeatingGrid, bool, error)
	Set(ctx context.Context, grid entity.SeatingGrid) error
	Invalidate(ctx context.Context) error
}

type Repository struct {
	Movie   MovieRepository
	Booking BookingRepository
	Seating SeatingCache // nil disables caching
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:   NewMovieRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}

func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Movie:   NewMemoryMovieRepository(log),
		Booking: NewMemoryBookingRepository(log),
	}
}

// WithSeatingCache attaches a Redis backed seating cache.
func (r *Repository) WithSeatingCache(client redis.Cmdable, key string, ttl time.Duration, log *zap.Logger) *Repository {
	r.Seating = NewSeatingCache(client, key, ttl, log)
	return r
}
