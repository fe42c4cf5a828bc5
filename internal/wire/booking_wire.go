package wire

import (
	"ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Post("/process", bookingHandler.ProcessBooking)
		r.Get("/queue", bookingHandler.GetQueue)
	})

	r.Get("/api/seating", bookingHandler.GetSeating)
}
