package wire

import (
	"movie-ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.GetBookings)
		r.Get("/daterange", bookingHandler.GetBookingsByDateRange)
		r.Get("/show/{showId}", bookingHandler.GetBookingsByShow)
		r.Get("/theater/{theaterId}", bookingHandler.GetBookingsByTheater)
		r.Get("/movie/{movieId}", bookingHandler.GetBookingsByMovie)
		r.Post("/booking/email", bookingHandler.GetBookingsByEmail)
		r.Get("/{id}", bookingHandler.GetBookingByID)
	})
}
