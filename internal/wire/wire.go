// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-ticket-booking/internal/adaptor"
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/queue"
	"movie-ticket-booking/internal/usecase"
	"movie-ticket-booking/pkg/cache"
	"movie-ticket-booking/pkg/middleware"
	"movie-ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, cacheStore *cache.Cache, publisher *queue.Publisher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, cacheStore, publisher, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireMovie(r, handler.Movie)
	wireTheater(r, handler.Theater)
	wireShow(r, handler.Show)
	wireBooking(r, handler.Booking)

	// Static file tree (posters live under <static>/posters)
	r.Get("/static/posters/list", handler.Static.ListPosters)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(config.Static.Dir))))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
