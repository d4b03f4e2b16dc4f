package repository

import (
	"movie-ticket-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie    MovieRepository
	Theater  TheaterRepository
	Show     ShowRepository
	BulkShow BulkShowRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:    NewMovieRepository(db, log),
		Theater:  NewTheaterRepository(db, log),
		Show:     NewShowRepository(db, log),
		BulkShow: NewBulkShowRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
