package wire

import (
	"movie-ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShow(r chi.Router, showHandler *adaptor.ShowHandler) {
	r.Route("/api/shows", func(r chi.Router) {
		r.Post("/", showHandler.CreateShow)

		// Bulk show routes come before the {id} wildcards
		r.Post("/bulk", showHandler.CreateBulkShow)
		r.Get("/bulk", showHandler.GetBulkShows)
		r.Get("/bulk/movie/{movieId}", showHandler.GetBulkShowsByMovie)
		r.Get("/bulk/{id}", showHandler.GetBulkShowByID)
		r.Delete("/bulk/{id}", showHandler.DeleteBulkShow)

		r.Get("/theater/{theaterId}", showHandler.GetShowsByTheater)
		r.Get("/movie/{movieId}", showHandler.GetShowsByMovie)
		r.Get("/movie/{movieId}/date/{date}/theater/{theaterId}", showHandler.GetShowsForMovieDateTheater)
		r.Get("/{id}", showHandler.GetShowByID)
		r.Delete("/{id}", showHandler.DeleteShow)
	})
}
