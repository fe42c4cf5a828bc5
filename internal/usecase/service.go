package usecase

import (
	"fmt"

	"ticket-booking/internal/data/repository"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Movie   MovieService
	Booking BookingService
}

// NewService builds the one theatre instance owned by the process.
func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) (*Service, error) {
	seats, err := NewSeatMap(config.Theatre.Rows, config.Theatre.Cols)
	if err != nil {
		return nil, fmt.Errorf("create seat map: %w", err)
	}

	return &Service{
		Movie:   NewMovieService(repo, log),
		Booking: NewBookingService(repo, seats, NewBookingQueue(), log),
	}, nil
}
