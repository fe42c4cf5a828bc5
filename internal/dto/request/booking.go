package request

// Row and Col are pointers so that seat 0 passes the required check.
type CreateBookingRequest struct {
	MovieID int64 `json:"movieId" validate:"required,min=1"`
	Row     *int  `json:"row" validate:"required"`
	Col     *int  `json:"col" validate:"required"`
}
