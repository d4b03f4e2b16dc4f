package request

import "movie-ticket-booking/internal/data/entity"

type BookingRequest struct {
	ShowID      string        `json:"showId" validate:"required,uuid4"`
	Seats       []entity.Seat `json:"seats" validate:"required,min=1"`
	TotalPrice  float64       `json:"totalPrice" validate:"required,gt=0"`
	Name        string        `json:"name" validate:"required"`
	Email       string        `json:"email" validate:"required,email"`
	PhoneNumber string        `json:"phoneNumber" validate:"required"`
}

type BookingsByEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}
