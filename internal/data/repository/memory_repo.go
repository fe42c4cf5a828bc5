package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ticket-booking/internal/data/entity"

	"go.uber.org/zap"
)

// memoryMovieRepository keeps the catalog in process memory. Used when
// STORAGE=memory and in tests.
type memoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[int64]entity.Movie
	nextID int64
	log    *zap.Logger
}

func NewMemoryMovieRepository(log *zap.Logger) MovieRepository {
	return &memoryMovieRepository{
		movies: make(map[int64]entity.Movie),
		log:    log.With(zap.String("repository", "movie_memory")),
	}
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if movie.ID == 0 {
		r.nextID++
		movie.ID = r.nextID
	} else if _, exists := r.movies[movie.ID]; exists {
		return fmt.Errorf("movie %d already exists", movie.ID)
	} else if movie.ID > r.nextID {
		r.nextID = movie.ID
	}

	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

func (r *memoryMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]*entity.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		movie := m
		movies = append(movies, &movie)
	}

	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Popularity != movies[j].Popularity {
			return movies[i].Popularity > movies[j].Popularity
		}
		return movies[i].ID < movies[j].ID
	})

	return movies, nil
}

func (r *memoryMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.movies[movie.ID]
	if !ok {
		return fmt.Errorf("movie %d: %w", movie.ID, ErrNotFound)
	}

	movie.Popularity = current.Popularity
	movie.CreatedAt = current.CreatedAt
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[id]; !ok {
		return fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}

	delete(r.movies, id)
	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *memoryMovieRepository) IncrementPopularity(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[id]
	if !ok {
		return fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}

	movie.Popularity++
	r.movies[id] = movie
	return nil
}

type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []entity.Booking
	log      *zap.Logger
}

func NewMemoryBookingRepository(log *zap.Logger) BookingRepository {
	return &memoryBookingRepository{
		log: log.With(zap.String("repository", "booking_memory")),
	}
}

func (r *memoryBookingRepository) Append(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *memoryBookingRepository) LoadAll(ctx context.Context) ([]entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}
