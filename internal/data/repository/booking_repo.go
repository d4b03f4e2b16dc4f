package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingDetail is a booking row with its show, movie and theater summaries
// joined in. The ref fields are pointers because a booking can outlive its
// show when a cascade is interrupted; reads tolerate the dangling reference.
type BookingDetail struct {
	entity.Booking
	ShowDate    *time.Time
	ShowTime    *string
	MovieTitle  *string
	TheaterName *string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
	FindAll(ctx context.Context, offset, limit int) ([]*BookingDetail, error)
	CountAll(ctx context.Context) (int64, error)
	FindByShow(ctx context.Context, showID uuid.UUID) ([]*BookingDetail, error)
	FindByEmail(ctx context.Context, email string) ([]*BookingDetail, error)
	FindByTheater(ctx context.Context, theaterID uuid.UUID) ([]*BookingDetail, error)
	FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*BookingDetail, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*BookingDetail, error)
	DeleteByShow(ctx context.Context, showID uuid.UUID) (int64, error)
	DeleteByShowIDs(ctx context.Context, showIDs []uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// bookingDetailQuery left-joins the populated refs so a booking with a
// dangling show reference still scans; filtered queries join on shows
// directly and never see such rows.
const bookingDetailQuery = `
	SELECT b.id, b.show_id, b.seats, b.total_price, b.booking_date,
	       b.name, b.email, b.phone_number,
	       s.date, s.show_time, m.title, t.name
	FROM bookings b
	LEFT JOIN shows s ON s.id = b.show_id
	LEFT JOIN movies m ON m.id = s.movie_id
	LEFT JOIN theaters t ON t.id = s.theater_id
`

func scanBookingDetail(row pgx.Row) (*BookingDetail, error) {
	var detail BookingDetail
	var seats []byte
	err := row.Scan(
		&detail.ID,
		&detail.ShowID,
		&seats,
		&detail.TotalPrice,
		&detail.BookingDate,
		&detail.Name,
		&detail.Email,
		&detail.PhoneNumber,
		&detail.ShowDate,
		&detail.ShowTime,
		&detail.MovieTitle,
		&detail.TheaterName,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(seats, &detail.Seats); err != nil {
		return nil, fmt.Errorf("decode seats: %w", err)
	}
	return &detail, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	seats, err := seatsJSON(booking.Seats)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (id, show_id, seats, total_price, booking_date,
		                      name, email, phone_number)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.ShowID,
		seats,
		booking.TotalPrice,
		booking.BookingDate,
		booking.Name,
		booking.Email,
		booking.PhoneNumber,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
		)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.id = $1`

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return detail, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, offset, limit int) ([]*BookingDetail, error) {
	query := bookingDetailQuery + ` ORDER BY b.booking_date DESC LIMIT $1 OFFSET $2`
	return r.queryBookingDetails(ctx, query, limit, offset)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) FindByShow(ctx context.Context, showID uuid.UUID) ([]*BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.show_id = $1 ORDER BY b.booking_date`
	return r.queryBookingDetails(ctx, query, showID)
}

func (r *bookingRepository) FindByEmail(ctx context.Context, email string) ([]*BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.email = $1 ORDER BY b.booking_date DESC`
	return r.queryBookingDetails(ctx, query, email)
}

func (r *bookingRepository) FindByTheater(ctx context.Context, theaterID uuid.UUID) ([]*BookingDetail, error) {
	// Inner join on shows so bookings whose show is gone are filtered out.
	query := `
		SELECT b.id, b.show_id, b.seats, b.total_price, b.booking_date,
		       b.name, b.email, b.phone_number,
		       s.date, s.show_time, m.title, t.name
		FROM bookings b
		JOIN shows s ON s.id = b.show_id AND s.theater_id = $1
		LEFT JOIN movies m ON m.id = s.movie_id
		LEFT JOIN theaters t ON t.id = s.theater_id
		ORDER BY b.booking_date
	`
	return r.queryBookingDetails(ctx, query, theaterID)
}

func (r *bookingRepository) FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*BookingDetail, error) {
	query := `
		SELECT b.id, b.show_id, b.seats, b.total_price, b.booking_date,
		       b.name, b.email, b.phone_number,
		       s.date, s.show_time, m.title, t.name
		FROM bookings b
		JOIN shows s ON s.id = b.show_id AND s.movie_id = $1
		LEFT JOIN movies m ON m.id = s.movie_id
		LEFT JOIN theaters t ON t.id = s.theater_id
		ORDER BY b.booking_date
	`
	return r.queryBookingDetails(ctx, query, movieID)
}

func (r *bookingRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*BookingDetail, error) {
	query := `
		SELECT b.id, b.show_id, b.seats, b.total_price, b.booking_date,
		       b.name, b.email, b.phone_number,
		       s.date, s.show_time, m.title, t.name
		FROM bookings b
		JOIN shows s ON s.id = b.show_id AND s.date BETWEEN $1 AND $2
		LEFT JOIN movies m ON m.id = s.movie_id
		LEFT JOIN theaters t ON t.id = s.theater_id
		ORDER BY s.date, b.booking_date
	`
	return r.queryBookingDetails(ctx, query, start, end)
}

func (r *bookingRepository) queryBookingDetails(ctx context.Context, query string, args ...any) ([]*BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	var details []*BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return details, nil
}

func (r *bookingRepository) DeleteByShow(ctx context.Context, showID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE show_id = $1`, showID)
	if err != nil {
		r.log.Error("Failed to delete bookings by show",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) DeleteByShowIDs(ctx context.Context, showIDs []uuid.UUID) (int64, error) {
	if len(showIDs) == 0 {
		return 0, nil
	}

	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE show_id = ANY($1)`, showIDs)
	if err != nil {
		r.log.Error("Failed to delete bookings by shows",
			zap.Error(err),
			zap.Int("show_count", len(showIDs)),
		)
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
