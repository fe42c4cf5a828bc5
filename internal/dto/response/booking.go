package response

import (
	"time"

	"ticket-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string    `json:"id"`
	MovieID   int64     `json:"movieId"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Timestamp time.Time `json:"timestamp"`
}

type SeatingResponse struct {
	Rows     int                `json:"rows"`
	Cols     int                `json:"cols"`
	Occupied int                `json:"occupied"`
	Seats    entity.SeatingGrid `json:"seats"`
}

type QueueResponse struct {
	Pending int `json:"pending"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID.String(),
		MovieID:   b.MovieID,
		Row:       b.Row,
		Col:       b.Col,
		Timestamp: b.CreatedAt,
	}
}

func SeatingToResponse(grid entity.SeatingGrid) SeatingResponse {
	cols := 0
	if len(grid) > 0 {
		cols = len(grid[0])
	}
	return SeatingResponse{
		Rows:     len(grid),
		Cols:     cols,
		Occupied: grid.OccupiedCount(),
		Seats:    grid,
	}
}
