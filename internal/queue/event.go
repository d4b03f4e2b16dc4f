package queue

import (
	"time"

	"movie-ticket-booking/internal/data/entity"
)

// BookingCreatedQueue is the queue booking events are published to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent notifies downstream consumers (confirmation mail,
// analytics) that seats were committed for a show.
type BookingCreatedEvent struct {
	BookingID  string        `json:"booking_id"`
	ShowID     string        `json:"show_id"`
	Seats      []entity.Seat `json:"seats"`
	TotalPrice float64       `json:"total_price"`
	Email      string        `json:"email"`
	CreatedAt  time.Time     `json:"created_at"`
}
