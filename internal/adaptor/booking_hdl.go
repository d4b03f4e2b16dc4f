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

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// GetBookings handles GET /api/bookings with pagination.
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page := utils.ParseInt(params.Get("page"), 1)
	limit := utils.ParseInt(params.Get("limit"), 10)

	bookings, err := h.service.GetBookings(r.Context(), page, limit)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", booking)
}

// GetBookingsByShow handles GET /api/bookings/show/{showId}
func (h *BookingHandler) GetBookingsByShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "showId")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	bookings, err := h.service.GetBookingsByShow(r.Context(), showID)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings by show")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBookingsByEmail handles POST /api/bookings/booking/email
func (h *BookingHandler) GetBookingsByEmail(w http.ResponseWriter, r *http.Request) {
	var req request.BookingsByEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bookings, err := h.service.GetBookingsByEmail(r.Context(), req.Email)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings by email")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBookingsByTheater handles GET /api/bookings/theater/{theaterId}
func (h *BookingHandler) GetBookingsByTheater(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "theaterId")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	bookings, err := h.service.GetBookingsByTheater(r.Context(), theaterID)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings by theater")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBookingsByMovie handles GET /api/bookings/movie/{movieId}
func (h *BookingHandler) GetBookingsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	bookings, err := h.service.GetBookingsByMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings by movie")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBookingsByDateRange handles GET /api/bookings/daterange?startDate=&endDate=
func (h *BookingHandler) GetBookingsByDateRange(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	startDate := params.Get("startDate")
	endDate := params.Get("endDate")
	if startDate == "" || endDate == "" {
		utils.ResponseBadRequest(w, "startDate and endDate are required", nil)
		return
	}

	bookings, err := h.service.GetBookingsByDateRange(r.Context(), startDate, endDate)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings by date range")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}
