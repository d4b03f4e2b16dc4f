package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/dto/request"
	"movie-ticket-booking/internal/dto/response"
	"movie-ticket-booking/internal/queue"
	"movie-ticket-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, page, limit int) (*response.BookingListResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingsByShow(ctx context.Context, showID string) ([]response.BookingResponse, error)
	GetBookingsByEmail(ctx context.Context, email string) ([]response.BookingResponse, error)
	GetBookingsByTheater(ctx context.Context, theaterID string) ([]response.BookingResponse, error)
	GetBookingsByMovie(ctx context.Context, movieID string) ([]response.BookingResponse, error)
	GetBookingsByDateRange(ctx context.Context, start, end string) ([]response.BookingResponse, error)
}

// BookingEventPublisher is satisfied by queue.Publisher.
type BookingEventPublisher interface {
	PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
}

type bookingService struct {
	repo      *repository.Repository
	publisher BookingEventPublisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher BookingEventPublisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves the requested seats with a single conditional
// update on the show row, then records the booking. If recording fails
// the reservation is rolled back by removing the seats again, so a seat
// is never held without a booking behind it.
func (s *bookingService) CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if entity.HasDuplicateSeats(req.Seats) {
		return nil, fmt.Errorf("validation failed: duplicate seats in booking request")
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", req.ShowID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("get show %s: %w", req.ShowID, err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s not found", req.ShowID)
	}

	if outside := entity.SeatsOutsideGrid(req.Seats, show.TheaterNumberOfRows, show.TheaterSeatsPerRow); len(outside) > 0 {
		return nil, fmt.Errorf("invalid seats for theater layout: %s", formatSeats(outside))
	}

	reserved, err := s.repo.Show.AppendBookedSeats(ctx, showID, req.Seats)
	if err != nil {
		return nil, fmt.Errorf("reserve seats for show %s: %w", req.ShowID, err)
	}
	if !reserved {
		// Re-read to name the seats the caller lost to, if any.
		current, err := s.repo.Show.FindByID(ctx, showID)
		if err == nil && current != nil {
			if taken := entity.OverlappingSeats(current.BookedSeats, req.Seats); len(taken) > 0 {
				return nil, fmt.Errorf("seats already booked: %s", formatSeats(taken))
			}
		}
		return nil, fmt.Errorf("not enough available seats for show %s", req.ShowID)
	}

	booking := &entity.Booking{
		ID:          uuid.New(),
		ShowID:      showID,
		Seats:       req.Seats,
		TotalPrice:  req.TotalPrice,
		BookingDate: time.Now(),
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if compErr := s.repo.Show.RemoveBookedSeats(ctx, showID, req.Seats); compErr != nil {
			s.log.Error("Seat reservation rollback failed",
				zap.String("show_id", req.ShowID),
				zap.Error(compErr),
			)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("show_id", req.ShowID),
		zap.Int("seats", len(req.Seats)),
	)

	if s.publisher != nil {
		// Best effort, the booking stands even if the broker is down.
		_ = s.publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
			BookingID:  booking.ID.String(),
			ShowID:     req.ShowID,
			Seats:      req.Seats,
			TotalPrice: req.TotalPrice,
			Email:      req.Email,
			CreatedAt:  booking.BookingDate,
		})
	}

	resp := response.BookingToResponse(booking, response.ShowRef{
		ID:       show.ID.String(),
		Date:     show.Date.Format("2006-01-02"),
		ShowTime: show.ShowTime,
		Movie:    show.MovieTitle,
		Theater:  show.TheaterName,
	})
	return &resp, nil
}

func formatSeats(seats []entity.Seat) string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = fmt.Sprintf("row %d seat %d", seat.Row, seat.SeatNumber)
	}
	return strings.Join(labels, ", ")
}

func bookingDetailToResponse(detail *repository.BookingDetail) response.BookingResponse {
	show := response.ShowRef{ID: detail.ShowID.String()}
	if detail.ShowDate != nil {
		show.Date = detail.ShowDate.Format("2006-01-02")
	}
	if detail.ShowTime != nil {
		show.ShowTime = *detail.ShowTime
	}
	if detail.MovieTitle != nil {
		show.Movie = *detail.MovieTitle
	}
	if detail.TheaterName != nil {
		show.Theater = *detail.TheaterName
	}
	return response.BookingToResponse(&detail.Booking, show)
}

func bookingDetailsToResponses(details []*repository.BookingDetail) []response.BookingResponse {
	responses := make([]response.BookingResponse, len(details))
	for i, detail := range details {
		responses[i] = bookingDetailToResponse(detail)
	}
	return responses
}

func (s *bookingService) GetBookings(ctx context.Context, page, limit int) (*response.BookingListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	details, err := s.repo.Booking.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &response.BookingListResponse{
		Bookings:    bookingDetailsToResponses(details),
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	detail, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	resp := bookingDetailToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetBookingsByShow(ctx context.Context, showID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	details, err := s.repo.Booking.FindByShow(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for show %s: %w", showID, err)
	}
	return bookingDetailsToResponses(details), nil
}

func (s *bookingService) GetBookingsByEmail(ctx context.Context, email string) ([]response.BookingResponse, error) {
	req := &request.BookingsByEmailRequest{Email: email}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	details, err := s.repo.Booking.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get bookings for email %s: %w", email, err)
	}
	return bookingDetailsToResponses(details), nil
}

func (s *bookingService) GetBookingsByTheater(ctx context.Context, theaterID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	details, err := s.repo.Booking.FindByTheater(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for theater %s: %w", theaterID, err)
	}
	return bookingDetailsToResponses(details), nil
}

func (s *bookingService) GetBookingsByMovie(ctx context.Context, movieID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	details, err := s.repo.Booking.FindByMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for movie %s: %w", movieID, err)
	}
	return bookingDetailsToResponses(details), nil
}

func (s *bookingService) GetBookingsByDateRange(ctx context.Context, start, end string) ([]response.BookingResponse, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %s: %w", end, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("invalid date range: end date %s precedes start date %s", end, start)
	}

	details, err := s.repo.Booking.FindByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("get bookings in date range: %w", err)
	}
	return bookingDetailsToResponses(details), nil
}
