package response

import (
	"time"

	"ticket-booking/internal/data/entity"
)

type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ReleaseDate string    `json:"releaseDate"`
	Duration    int       `json:"duration"`
	Genre       string    `json:"genre"`
	Popularity  int64     `json:"popularity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Duration:    movie.DurationInMinutes,
		Genre:       movie.Genre,
		Popularity:  movie.Popularity,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}
