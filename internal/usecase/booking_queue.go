package usecase

import (
	"sync"

	"ticket-booking/internal/data/entity"
)

// BookingQueue holds accepted bookings awaiting downstream processing, in
// acceptance order. It stores copies; draining it never affects the ledger.
type BookingQueue struct {
	mu    sync.Mutex
	items []entity.Booking
	head  int
}

func NewBookingQueue() *BookingQueue {
	return &BookingQueue{}
}

func (q *BookingQueue) Enqueue(b entity.Booking) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, b)
}

// Dequeue pops the oldest booking. ok is false when the queue is empty.
func (q *BookingQueue) Dequeue() (b entity.Booking, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return entity.Booking{}, false
	}

	b = q.items[q.head]
	q.items[q.head] = entity.Booking{}
	q.head++

	// compact once the consumed prefix dominates the backing array
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return b, true
}

func (q *BookingQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items) - q.head
}
