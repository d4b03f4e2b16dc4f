package entity

import (
	"time"

	"github.com/google/uuid"
)

// Show is a single screening of a movie in a theater on a given date and
// slot. booked_seats is owned by the show; availableSeats plus the number
// of booked seats always equals the theater's capacity.
type Show struct {
	BaseSimple
	MovieID        uuid.UUID `db:"movie_id"`
	TheaterID      uuid.UUID `db:"theater_id"`
	Date           time.Time `db:"date"`
	ShowTime       string    `db:"show_time"`
	SeatPrice      float64   `db:"seat_price"`
	AvailableSeats int       `db:"available_seats"`
	BookedSeats    []Seat    `db:"booked_seats"`
}
