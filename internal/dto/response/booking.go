package response

import (
	"time"

	"movie-ticket-booking/internal/data/entity"
)

// ShowRef is the populated show summary embedded in booking payloads.
type ShowRef struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	ShowTime string `json:"showTime"`
	Movie    string `json:"movie,omitempty"`
	Theater  string `json:"theater,omitempty"`
}

type BookingResponse struct {
	ID          string        `json:"id"`
	Show        ShowRef       `json:"show"`
	Seats       []entity.Seat `json:"seats"`
	TotalPrice  float64       `json:"totalPrice"`
	BookingDate time.Time     `json:"bookingDate"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
}

// BookingListResponse mirrors the paginated booking listing payload
type BookingListResponse struct {
	Bookings    []BookingResponse `json:"bookings"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func BookingToResponse(booking *entity.Booking, show ShowRef) BookingResponse {
	seats := booking.Seats
	if seats == nil {
		seats = []entity.Seat{}
	}
	return BookingResponse{
		ID:          booking.ID.String(),
		Show:        show,
		Seats:       seats,
		TotalPrice:  booking.TotalPrice,
		BookingDate: booking.BookingDate,
		Name:        booking.Name,
		Email:       booking.Email,
		PhoneNumber: booking.PhoneNumber,
	}
}
