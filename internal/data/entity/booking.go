package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking references its show by id only. Deleting a show removes its
// bookings through the cascade, not through a storage constraint.
type Booking struct {
	ID          uuid.UUID `db:"id"`
	ShowID      uuid.UUID `db:"show_id"`
	Seats       []Seat    `db:"seats"`
	TotalPrice  float64   `db:"total_price"`
	BookingDate time.Time `db:"booking_date"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	PhoneNumber string    `db:"phone_number"`
}
