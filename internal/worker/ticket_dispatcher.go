package worker

import (
	"context"
	"errors"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is satisfied by broker.Publisher
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// TicketIssued is the message emitted for every processed booking
type TicketIssued struct {
	BookingID uuid.UUID `json:"bookingId"`
	MovieID   int64     `json:"movieId"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	BookedAt  time.Time `json:"bookedAt"`
	IssuedAt  time.Time `json:"issuedAt"`
}

func ticketFromBooking(b *entity.Booking, now time.Time) TicketIssued {
	return TicketIssued{
		BookingID: b.ID,
		MovieID:   b.MovieID,
		Row:       b.Row,
		Col:       b.Col,
		BookedAt:  b.CreatedAt,
		IssuedAt:  now,
	}
}

// TicketDispatcher drains the booking queue on a fixed interval and
// publishes one TicketIssued per booking.
type TicketDispatcher struct {
	bookings  usecase.BookingService
	publisher Publisher
	interval  time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewTicketDispatcher(bookings usecase.BookingService, publisher Publisher, interval time.Duration, log *zap.Logger) *TicketDispatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &TicketDispatcher{
		bookings:  bookings,
		publisher: publisher,
		interval:  interval,
		log:       log.With(zap.String("worker", "ticket_dispatcher")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run blocks until ctx is cancelled
func (d *TicketDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Info("Ticket dispatcher started", zap.Duration("interval", d.interval))

	for {
		select {
		case <-ctx.Done():
			d.log.Info("Ticket dispatcher stopped")
			return
		case <-ticker.C:
			d.Drain(ctx)
		}
	}
}

// Drain processes bookings until the queue is empty and returns how many
// tickets were published.
func (d *TicketDispatcher) Drain(ctx context.Context) int {
	published := 0
	for ctx.Err() == nil {
		booking, err := d.bookings.ProcessNext(ctx)
		if errors.Is(err, usecase.ErrNoBookingsPending) {
			break
		}
		if err != nil {
			d.log.Error("Process next booking failed", zap.Error(err))
			break
		}

		// The ledger already holds the booking, so a lost message is logged and not retried.
		if err := d.publisher.Publish(ctx, ticketFromBooking(booking, d.now())); err != nil {
			d.log.Error("Ticket publish failed, booking dropped from dispatch",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.Int64("movie_id", booking.MovieID),
				zap.Int("row", booking.Row),
				zap.Int("col", booking.Col),
			)
			continue
		}
		published++
	}

	if published > 0 {
		d.log.Info("Tickets dispatched", zap.Int("count", published))
	}
	return published
}
