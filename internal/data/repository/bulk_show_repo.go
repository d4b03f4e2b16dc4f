package repository

import (
	"context"
	"fmt"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BulkShowRepository interface {
	Create(ctx context.Context, bulk *entity.BulkShow) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BulkShow, error)
	FindAll(ctx context.Context) ([]*entity.BulkShow, error)
	FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.BulkShow, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMovie(ctx context.Context, movieID uuid.UUID) (int64, error)
	RemoveTheaterFromAll(ctx context.Context, theaterID uuid.UUID) (int64, error)
}

type bulkShowRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBulkShowRepository(db database.PgxIface, log *zap.Logger) BulkShowRepository {
	return &bulkShowRepository{
		db:  db,
		log: log.With(zap.String("repository", "bulk_show")),
	}
}

const bulkShowColumns = `id, movie_id, theaters, seat_price, start_date, end_date, created_at`

func scanBulkShow(row pgx.Row) (*entity.BulkShow, error) {
	var bulk entity.BulkShow
	err := row.Scan(
		&bulk.ID,
		&bulk.MovieID,
		&bulk.TheaterIDs,
		&bulk.SeatPrice,
		&bulk.StartDate,
		&bulk.EndDate,
		&bulk.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bulk, nil
}

func (r *bulkShowRepository) Create(ctx context.Context, bulk *entity.BulkShow) error {
	query := `
		INSERT INTO bulk_shows (id, movie_id, theaters, seat_price, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		bulk.ID,
		bulk.MovieID,
		bulk.TheaterIDs,
		bulk.SeatPrice,
		bulk.StartDate,
		bulk.EndDate,
		bulk.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create bulk show",
			zap.Error(err),
			zap.String("movie_id", bulk.MovieID.String()),
		)
		return fmt.Errorf("failed to create bulk show: %w", err)
	}

	return nil
}

func (r *bulkShowRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BulkShow, error) {
	query := `SELECT ` + bulkShowColumns + ` FROM bulk_shows WHERE id = $1`

	bulk, err := scanBulkShow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bulk show by ID",
			zap.Error(err),
			zap.String("bulk_show_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find bulk show: %w", err)
	}

	return bulk, nil
}

func (r *bulkShowRepository) FindAll(ctx context.Context) ([]*entity.BulkShow, error) {
	query := `SELECT ` + bulkShowColumns + ` FROM bulk_shows ORDER BY start_date`
	return r.queryBulkShows(ctx, query)
}

func (r *bulkShowRepository) FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.BulkShow, error) {
	query := `SELECT ` + bulkShowColumns + ` FROM bulk_shows WHERE movie_id = $1 ORDER BY start_date`
	return r.queryBulkShows(ctx, query, movieID)
}

func (r *bulkShowRepository) queryBulkShows(ctx context.Context, query string, args ...any) ([]*entity.BulkShow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bulk shows", zap.Error(err))
		return nil, fmt.Errorf("failed to find bulk shows: %w", err)
	}
	defer rows.Close()

	var bulks []*entity.BulkShow
	for rows.Next() {
		bulk, err := scanBulkShow(rows)
		if err != nil {
			r.log.Error("Failed to scan bulk show row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan bulk show: %w", err)
		}
		bulks = append(bulks, bulk)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return bulks, nil
}

func (r *bulkShowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bulk_shows WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete bulk show",
			zap.Error(err),
			zap.String("bulk_show_id", id.String()),
		)
		return fmt.Errorf("failed to delete bulk show: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bulk show not found")
	}

	return nil
}

func (r *bulkShowRepository) DeleteByMovie(ctx context.Context, movieID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM bulk_shows WHERE movie_id = $1`, movieID)
	if err != nil {
		r.log.Error("Failed to delete bulk shows by movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, fmt.Errorf("failed to delete bulk shows: %w", err)
	}

	return result.RowsAffected(), nil
}

// RemoveTheaterFromAll pulls the theater out of every bulk show's theater
// set without deleting the bulk shows themselves.
func (r *bulkShowRepository) RemoveTheaterFromAll(ctx context.Context, theaterID uuid.UUID) (int64, error) {
	query := `UPDATE bulk_shows SET theaters = array_remove(theaters, $1) WHERE $1 = ANY(theaters)`

	result, err := r.db.Exec(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to remove theater from bulk shows",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return 0, fmt.Errorf("failed to update bulk shows: %w", err)
	}

	return result.RowsAffected(), nil
}
