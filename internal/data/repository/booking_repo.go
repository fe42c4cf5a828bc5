package repository

import (
	"context"
	"fmt"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"go.uber.org/zap"
)

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Append(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, movie_id, seat_row, seat_col, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.MovieID,
		booking.Row,
		booking.Col,
		booking.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("movie_id", booking.MovieID),
		)
		return fmt.Errorf("append booking %s: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) LoadAll(ctx context.Context) ([]entity.Booking, error) {
	query := `
		SELECT id, movie_id, seat_row, seat_col, created_at
		FROM bookings
		ORDER BY seq ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.MovieID, &b.Row, &b.Col, &b.CreatedAt); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	r.log.Debug("Bookings loaded", zap.Int("count", len(bookings)))

	return bookings, nil
}
