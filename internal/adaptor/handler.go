package adaptor

import (
	"net/http"
	"strings"

	"movie-ticket-booking/internal/usecase"
	"movie-ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie   *MovieHandler
	Theater *TheaterHandler
	Show    *ShowHandler
	Booking *BookingHandler
	Static  *StaticHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Movie:   NewMovieHandler(service.Movie, config, log.With(zap.String("handler", "movie"))),
		Theater: NewTheaterHandler(service.Theater, log.With(zap.String("handler", "theater"))),
		Show:    NewShowHandler(service.Show, log.With(zap.String("handler", "show"))),
		Booking: NewBookingHandler(service.Booking, log.With(zap.String("handler", "booking"))),
		Static:  NewStaticHandler(config, log.With(zap.String("handler", "static"))),
	}
}

// handleServiceError maps service error messages to HTTP statuses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "already booked"),
		strings.Contains(errMsg, "conflicts"),
		strings.Contains(errMsg, "invalid"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
