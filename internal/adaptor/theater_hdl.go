package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"movie-ticket-booking/internal/dto/request"
	"movie-ticket-booking/internal/usecase"
	"movie-ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TheaterHandler struct {
	service usecase.TheaterService
	log     *zap.Logger
}

func NewTheaterHandler(service usecase.TheaterService, log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{
		service: service,
		log:     log,
	}
}

// CreateTheater handles POST /api/theaters
func (h *TheaterHandler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.TheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "Theater created successfully", theater)
}

// GetTheaters handles GET /api/theaters
func (h *TheaterHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.GetTheaters(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "Theaters retrieved successfully", theaters)
}

// GetTheaterByID handles GET /api/theaters/{id}
func (h *TheaterHandler) GetTheaterByID(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	theater, err := h.service.GetTheaterByID(r.Context(), theaterID)
	if err != nil {
		handleServiceError(h.log, w, err, "get theater")
		return
	}

	utils.ResponseSuccess(w, "Theater retrieved successfully", theater)
}

// GetTheatersByCity handles GET /api/theaters/city/{city}
func (h *TheaterHandler) GetTheatersByCity(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	if city == "" {
		utils.ResponseBadRequest(w, "City is required", nil)
		return
	}

	theaters, err := h.service.GetTheatersByCity(r.Context(), city)
	if err != nil {
		handleServiceError(h.log, w, err, "get theaters by city")
		return
	}

	utils.ResponseSuccess(w, "Theaters retrieved successfully", theaters)
}

// UpdateTheater handles PATCH /api/theaters/{id}
func (h *TheaterHandler) UpdateTheater(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	updatedKeys, err := bodyKeys(body)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	var req request.TheaterUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theater, err := h.service.UpdateTheater(r.Context(), theaterID, &req, updatedKeys)
	if err != nil {
		handleServiceError(h.log, w, err, "update theater")
		return
	}

	utils.ResponseSuccess(w, "Theater updated successfully", theater)
}

// DeleteTheater handles DELETE /api/theaters/{id}
func (h *TheaterHandler) DeleteTheater(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	result, err := h.service.DeleteTheater(r.Context(), theaterID)
	if err != nil {
		handleServiceError(h.log, w, err, "delete theater")
		return
	}

	utils.ResponseSuccess(w, "Theater deleted successfully", result)
}
