package usecase

import "errors"

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrSeatOutOfBounds   = errors.New("seat out of bounds")
	ErrSeatAlreadyBooked = errors.New("seat already booked")
	ErrNoBookingsPending = errors.New("no bookings in the queue")
)

var (
	ErrPersistence = errors.New("persistence failure")
	ErrValidation  = errors.New("validation failed")
)
