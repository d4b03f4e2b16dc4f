package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-ticket-booking/internal/dto/request"
	"movie-ticket-booking/internal/usecase"
	"movie-ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log,
	}
}

// CreateShow handles POST /api/shows
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req request.ShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	show, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create show")
		return
	}

	utils.ResponseCreated(w, "Show created successfully", show)
}

// CreateBulkShow handles POST /api/shows/bulk
func (h *ShowHandler) CreateBulkShow(w http.ResponseWriter, r *http.Request) {
	var req request.BulkShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreateBulkShow(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create bulk show")
		return
	}

	utils.ResponseCreated(w, "Bulk show created successfully", result)
}

// GetShowByID handles GET /api/shows/{id}
func (h *ShowHandler) GetShowByID(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	show, err := h.service.GetShowByID(r.Context(), showID)
	if err != nil {
		handleServiceError(h.log, w, err, "get show")
		return
	}

	utils.ResponseSuccess(w, "Show retrieved successfully", show)
}

// GetShowsByTheater handles GET /api/shows/theater/{theaterId}
func (h *ShowHandler) GetShowsByTheater(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "theaterId")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	shows, err := h.service.GetShowsByTheater(r.Context(), theaterID)
	if err != nil {
		handleServiceError(h.log, w, err, "get shows by theater")
		return
	}

	utils.ResponseSuccess(w, "Shows retrieved successfully", shows)
}

// GetShowsByMovie handles GET /api/shows/movie/{movieId}
func (h *ShowHandler) GetShowsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	shows, err := h.service.GetShowsByMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "get shows by movie")
		return
	}

	utils.ResponseSuccess(w, "Shows retrieved successfully", shows)
}

// GetShowsForMovieDateTheater handles
// GET /api/shows/movie/{movieId}/date/{date}/theater/{theaterId}
func (h *ShowHandler) GetShowsForMovieDateTheater(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")
	date := chi.URLParam(r, "date")
	theaterID := chi.URLParam(r, "theaterId")
	if movieID == "" || date == "" || theaterID == "" {
		utils.ResponseBadRequest(w, "Movie ID, date and theater ID are required", nil)
		return
	}

	shows, err := h.service.GetShowsForMovieDateTheater(r.Context(), movieID, date, theaterID)
	if err != nil {
		handleServiceError(h.log, w, err, "get shows")
		return
	}

	utils.ResponseSuccess(w, "Shows retrieved successfully", shows)
}

// GetBulkShows handles GET /api/shows/bulk
func (h *ShowHandler) GetBulkShows(w http.ResponseWriter, r *http.Request) {
	bulkShows, err := h.service.GetBulkShows(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get bulk shows")
		return
	}

	utils.ResponseSuccess(w, "Bulk shows retrieved successfully", bulkShows)
}

// GetBulkShowByID handles GET /api/shows/bulk/{id}
func (h *ShowHandler) GetBulkShowByID(w http.ResponseWriter, r *http.Request) {
	bulkShowID := chi.URLParam(r, "id")
	if bulkShowID == "" {
		utils.ResponseBadRequest(w, "Bulk show ID is required", nil)
		return
	}

	bulkShow, err := h.service.GetBulkShowByID(r.Context(), bulkShowID)
	if err != nil {
		handleServiceError(h.log, w, err, "get bulk show")
		return
	}

	utils.ResponseSuccess(w, "Bulk show retrieved successfully", bulkShow)
}

// GetBulkShowsByMovie handles GET /api/shows/bulk/movie/{movieId}
func (h *ShowHandler) GetBulkShowsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	bulkShows, err := h.service.GetBulkShowsByMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "get bulk shows by movie")
		return
	}

	utils.ResponseSuccess(w, "Bulk shows retrieved successfully", bulkShows)
}

// DeleteShow handles DELETE /api/shows/{id}
func (h *ShowHandler) DeleteShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	result, err := h.service.DeleteShow(r.Context(), showID)
	if err != nil {
		handleServiceError(h.log, w, err, "delete show")
		return
	}

	utils.ResponseSuccess(w, "Show deleted successfully", result)
}

// DeleteBulkShow handles DELETE /api/shows/bulk/{id}
func (h *ShowHandler) DeleteBulkShow(w http.ResponseWriter, r *http.Request) {
	bulkShowID := chi.URLParam(r, "id")
	if bulkShowID == "" {
		utils.ResponseBadRequest(w, "Bulk show ID is required", nil)
		return
	}

	result, err := h.service.DeleteBulkShow(r.Context(), bulkShowID)
	if err != nil {
		handleServiceError(h.log, w, err, "delete bulk show")
		return
	}

	utils.ResponseSuccess(w, "Bulk show deleted successfully", result)
}
