package usecase

import (
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/queue"
	"movie-ticket-booking/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Movie   MovieService
	Theater TheaterService
	Show    ShowService
	Booking BookingService
}

func NewService(repo *repository.Repository, cacheStore *cache.Cache, publisher *queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		Movie:   NewMovieService(repo, cacheStore, log),
		Theater: NewTheaterService(repo, cacheStore, log),
		Show:    NewShowService(repo, log),
		Booking: NewBookingService(repo, publisher, log),
	}
}
