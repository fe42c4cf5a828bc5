package entity

import (
	"time"
)

type Movie struct {
	Base
	ID                int64     `db:"id"`
	Title             string    `db:"title"`
	ReleaseDate       time.Time `db:"release_date"`
	DurationInMinutes int       `db:"duration_in_minutes"`
	Genre             string    `db:"genre"`
	Popularity        int64     `db:"popularity"` // bookings made against this movie
}
