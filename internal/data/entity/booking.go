package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking pairs one claimed seat with a movie. Immutable once created.
type Booking struct {
	ID        uuid.UUID `db:"id"`
	MovieID   int64     `db:"movie_id"`
	Row       int       `db:"seat_row"`
	Col       int       `db:"seat_col"`
	CreatedAt time.Time `db:"created_at"`
}
