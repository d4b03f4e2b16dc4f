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

// ShowDetail is a show row with its movie and theater summaries joined in,
// the equivalent of a populated read.
type ShowDetail struct {
	entity.Show
	MovieTitle          string
	MovieDuration       int
	TheaterName         string
	TheaterAddress      string
	TheaterCity         string
	TheaterSeatsPerRow  int
	TheaterNumberOfRows int
	TheaterCapacity     int
}

// SlotKey identifies one (theater, date, showTime) tuple. At most one show
// may exist per key.
type SlotKey struct {
	TheaterID uuid.UUID
	Date      string // 2006-01-02
	ShowTime  string
}

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	CreateBatch(ctx context.Context, shows []*entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*ShowDetail, error)
	FindByTheater(ctx context.Context, theaterID uuid.UUID) ([]*ShowDetail, error)
	FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*ShowDetail, error)
	FindByMovieDateTheater(ctx context.Context, movieID uuid.UUID, date time.Time, theaterID uuid.UUID) ([]*ShowDetail, error)
	ExistsAt(ctx context.Context, theaterID uuid.UUID, date time.Time, showTime string) (bool, error)
	OccupiedSlots(ctx context.Context, theaterIDs []uuid.UUID, start, end time.Time) (map[SlotKey]struct{}, error)
	FindIDsByMovie(ctx context.Context, movieID uuid.UUID) ([]uuid.UUID, error)
	FindIDsByTheater(ctx context.Context, theaterID uuid.UUID) ([]uuid.UUID, error)
	FindIDsForBulk(ctx context.Context, movieID uuid.UUID, theaterIDs []uuid.UUID, start, end time.Time) ([]uuid.UUID, error)
	AppendBookedSeats(ctx context.Context, showID uuid.UUID, seats []entity.Seat) (bool, error)
	RemoveBookedSeats(ctx context.Context, showID uuid.UUID, seats []entity.Seat) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

const showDetailQuery = `
	SELECT s.id, s.movie_id, s.theater_id, s.date, s.show_time, s.seat_price,
	       s.available_seats, s.booked_seats, s.created_at,
	       m.title, m.duration, t.name, t.address, t.city,
	       t.seats_per_row, t.number_of_rows, t.seats_capacity
	FROM shows s
	JOIN movies m ON m.id = s.movie_id
	JOIN theaters t ON t.id = s.theater_id
`

func scanShowDetail(row pgx.Row) (*ShowDetail, error) {
	var detail ShowDetail
	var bookedSeats []byte
	err := row.Scan(
		&detail.ID,
		&detail.MovieID,
		&detail.TheaterID,
		&detail.Date,
		&detail.ShowTime,
		&detail.SeatPrice,
		&detail.AvailableSeats,
		&bookedSeats,
		&detail.CreatedAt,
		&detail.MovieTitle,
		&detail.MovieDuration,
		&detail.TheaterName,
		&detail.TheaterAddress,
		&detail.TheaterCity,
		&detail.TheaterSeatsPerRow,
		&detail.TheaterNumberOfRows,
		&detail.TheaterCapacity,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bookedSeats, &detail.BookedSeats); err != nil {
		return nil, fmt.Errorf("decode booked seats: %w", err)
	}
	return &detail, nil
}

func seatsJSON(seats []entity.Seat) (string, error) {
	if seats == nil {
		seats = []entity.Seat{}
	}
	payload, err := json.Marshal(seats)
	if err != nil {
		return "", fmt.Errorf("encode seats: %w", err)
	}
	return string(payload), nil
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	booked, err := seatsJSON(show.BookedSeats)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shows (id, movie_id, theater_id, date, show_time, seat_price,
		                   available_seats, booked_seats, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)
	`

	_, err = r.db.Exec(ctx, query,
		show.ID,
		show.MovieID,
		show.TheaterID,
		show.Date,
		show.ShowTime,
		show.SeatPrice,
		show.AvailableSeats,
		booked,
		show.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("theater_id", show.TheaterID.String()),
			zap.String("show_time", show.ShowTime),
		)
		return fmt.Errorf("failed to create show: %w", err)
	}

	return nil
}

// CreateBatch inserts all shows in a single multi-row statement so a bulk
// expansion lands atomically.
func (r *showRepository) CreateBatch(ctx context.Context, shows []*entity.Show) error {
	if len(shows) == 0 {
		return nil
	}

	query := `
		INSERT INTO shows (id, movie_id, theater_id, date, show_time, seat_price,
		                   available_seats, booked_seats, created_at)
		VALUES `
	args := make([]interface{}, 0, len(shows)*9)
	for i, show := range shows {
		if i > 0 {
			query += ","
		}
		base := i * 9
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d::jsonb, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)

		booked, err := seatsJSON(show.BookedSeats)
		if err != nil {
			return err
		}
		args = append(args,
			show.ID, show.MovieID, show.TheaterID, show.Date, show.ShowTime,
			show.SeatPrice, show.AvailableSeats, booked, show.CreatedAt,
		)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to batch create shows",
			zap.Error(err),
			zap.Int("count", len(shows)),
		)
		return fmt.Errorf("failed to batch create shows: %w", err)
	}

	r.log.Info("Shows batch created", zap.Int("count", len(shows)))
	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*ShowDetail, error) {
	query := showDetailQuery + ` WHERE s.id = $1`

	detail, err := scanShowDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find show: %w", err)
	}

	return detail, nil
}

func (r *showRepository) FindByTheater(ctx context.Context, theaterID uuid.UUID) ([]*ShowDetail, error) {
	query := showDetailQuery + ` WHERE s.theater_id = $1 ORDER BY s.date, s.show_time`
	return r.queryShowDetails(ctx, query, theaterID)
}

func (r *showRepository) FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*ShowDetail, error) {
	query := showDetailQuery + ` WHERE s.movie_id = $1 ORDER BY s.date, s.show_time`
	return r.queryShowDetails(ctx, query, movieID)
}

func (r *showRepository) FindByMovieDateTheater(ctx context.Context, movieID uuid.UUID, date time.Time, theaterID uuid.UUID) ([]*ShowDetail, error) {
	query := showDetailQuery + ` WHERE s.movie_id = $1 AND s.date = $2 AND s.theater_id = $3 ORDER BY s.show_time`
	return r.queryShowDetails(ctx, query, movieID, date, theaterID)
}

func (r *showRepository) queryShowDetails(ctx context.Context, query string, args ...any) ([]*ShowDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query shows", zap.Error(err))
		return nil, fmt.Errorf("failed to find shows: %w", err)
	}
	defer rows.Close()

	var details []*ShowDetail
	for rows.Next() {
		detail, err := scanShowDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return details, nil
}

func (r *showRepository) ExistsAt(ctx context.Context, theaterID uuid.UUID, date time.Time, showTime string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM shows WHERE theater_id = $1 AND date = $2 AND show_time = $3)`

	var exists bool
	err := r.db.QueryRow(ctx, query, theaterID, date, showTime).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check show conflict",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
			zap.String("show_time", showTime),
		)
		return false, fmt.Errorf("failed to check show conflict: %w", err)
	}

	return exists, nil
}

// OccupiedSlots returns every (theater, date, showTime) tuple that already
// has a show within the date range, for bulk-expansion conflict skipping.
func (r *showRepository) OccupiedSlots(ctx context.Context, theaterIDs []uuid.UUID, start, end time.Time) (map[SlotKey]struct{}, error) {
	query := `SELECT theater_id, date, show_time FROM shows WHERE theater_id = ANY($1) AND date BETWEEN $2 AND $3`

	rows, err := r.db.Query(ctx, query, theaterIDs, start, end)
	if err != nil {
		r.log.Error("Failed to query occupied slots", zap.Error(err))
		return nil, fmt.Errorf("failed to find occupied slots: %w", err)
	}
	defer rows.Close()

	occupied := make(map[SlotKey]struct{})
	for rows.Next() {
		var theaterID uuid.UUID
		var date time.Time
		var showTime string
		if err := rows.Scan(&theaterID, &date, &showTime); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		occupied[SlotKey{TheaterID: theaterID, Date: date.Format("2006-01-02"), ShowTime: showTime}] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return occupied, nil
}

func (r *showRepository) FindIDsByMovie(ctx context.Context, movieID uuid.UUID) ([]uuid.UUID, error) {
	return r.queryIDs(ctx, `SELECT id FROM shows WHERE movie_id = $1`, movieID)
}

func (r *showRepository) FindIDsByTheater(ctx context.Context, theaterID uuid.UUID) ([]uuid.UUID, error) {
	return r.queryIDs(ctx, `SELECT id FROM shows WHERE theater_id = $1`, theaterID)
}

// FindIDsForBulk recomputes the shows a bulk show generated: same movie,
// theater in its set, date inside its inclusive range.
func (r *showRepository) FindIDsForBulk(ctx context.Context, movieID uuid.UUID, theaterIDs []uuid.UUID, start, end time.Time) ([]uuid.UUID, error) {
	query := `SELECT id FROM shows WHERE movie_id = $1 AND theater_id = ANY($2) AND date BETWEEN $3 AND $4`
	return r.queryIDs(ctx, query, movieID, theaterIDs, start, end)
}

func (r *showRepository) queryIDs(ctx context.Context, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query show IDs", zap.Error(err))
		return nil, fmt.Errorf("failed to find show IDs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan show ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return ids, nil
}

// AppendBookedSeats appends seats and decrements available_seats in one
// conditional statement. The overlap predicate runs inside the store, so
// two concurrent requests for the same seat serialize on the row and only
// one can match. Returns false when the predicate rejected the update,
// i.e. some requested seat was already taken (or the show is gone).
func (r *showRepository) AppendBookedSeats(ctx context.Context, showID uuid.UUID, seats []entity.Seat) (bool, error) {
	payload, err := seatsJSON(seats)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE shows
		SET booked_seats = booked_seats || $2::jsonb,
		    available_seats = available_seats - $3
		WHERE id = $1
		  AND available_seats >= $3
		  AND NOT EXISTS (
		      SELECT 1
		      FROM jsonb_array_elements(booked_seats) taken,
		           jsonb_array_elements($2::jsonb) wanted
		      WHERE taken->>'row' = wanted->>'row'
		        AND taken->>'seatNumber' = wanted->>'seatNumber'
		  )
	`

	result, err := r.db.Exec(ctx, query, showID, payload, len(seats))
	if err != nil {
		r.log.Error("Failed to append booked seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.Int("seat_count", len(seats)),
		)
		return false, fmt.Errorf("failed to book seats: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RemoveBookedSeats compensates a seat append when the booking insert that
// followed it failed.
func (r *showRepository) RemoveBookedSeats(ctx context.Context, showID uuid.UUID, seats []entity.Seat) error {
	payload, err := seatsJSON(seats)
	if err != nil {
		return err
	}

	query := `
		UPDATE shows
		SET booked_seats = (
		        SELECT COALESCE(jsonb_agg(taken), '[]'::jsonb)
		        FROM jsonb_array_elements(booked_seats) taken
		        WHERE NOT EXISTS (
		            SELECT 1 FROM jsonb_array_elements($2::jsonb) wanted
		            WHERE taken->>'row' = wanted->>'row'
		              AND taken->>'seatNumber' = wanted->>'seatNumber'
		        )
		    ),
		    available_seats = available_seats + $3
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, showID, payload, len(seats)); err != nil {
		r.log.Error("Failed to remove booked seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return fmt.Errorf("failed to release seats: %w", err)
	}

	return nil
}

func (r *showRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return fmt.Errorf("failed to delete show: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show not found")
	}

	return nil
}

func (r *showRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.db.Exec(ctx, `DELETE FROM shows WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to delete shows", zap.Error(err), zap.Int("count", len(ids)))
		return 0, fmt.Errorf("failed to delete shows: %w", err)
	}

	return result.RowsAffected(), nil
}
