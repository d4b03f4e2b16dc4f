package entity

import (
	"time"

	"github.com/google/uuid"
)

// BulkShow is a request to generate recurring shows: one show per day in
// [StartDate, EndDate] per referenced theater per show timing. It is not
// itself bookable.
type BulkShow struct {
	BaseSimple
	MovieID    uuid.UUID   `db:"movie_id"`
	TheaterIDs []uuid.UUID `db:"theaters"`
	SeatPrice  float64     `db:"seat_price"`
	StartDate  time.Time   `db:"start_date"`
	EndDate    time.Time   `db:"end_date"`
}
