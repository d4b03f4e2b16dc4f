package wire

import (
	"movie-ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTheater(r chi.Router, theaterHandler *adaptor.TheaterHandler) {
	r.Route("/api/theaters", func(r chi.Router) {
		r.Post("/", theaterHandler.CreateTheater)
		r.Get("/", theaterHandler.GetTheaters)
		r.Get("/city/{city}", theaterHandler.GetTheatersByCity)
		r.Get("/{id}", theaterHandler.GetTheaterByID)
		r.Patch("/{id}", theaterHandler.UpdateTheater)
		r.Delete("/{id}", theaterHandler.DeleteTheater)
	})
}
