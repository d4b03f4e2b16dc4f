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

type TheaterRepository interface {
	Create(ctx context.Context, theater *entity.Theater) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Theater, error)
	FindAll(ctx context.Context) ([]*entity.Theater, error)
	FindByCity(ctx context.Context, city string) ([]*entity.Theater, error)
	Update(ctx context.Context, theater *entity.Theater) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type theaterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheaterRepository(db database.PgxIface, log *zap.Logger) TheaterRepository {
	return &theaterRepository{
		db:  db,
		log: log.With(zap.String("repository", "theater")),
	}
}

const theaterColumns = `id, name, address, city, seats_per_row, number_of_rows, seats_capacity, show_timings, created_at, updated_at`

func (r *theaterRepository) scanTheater(row pgx.Row) (*entity.Theater, error) {
	var theater entity.Theater
	err := row.Scan(
		&theater.ID,
		&theater.Name,
		&theater.Address,
		&theater.City,
		&theater.SeatsPerRow,
		&theater.NumberOfRows,
		&theater.SeatsCapacity,
		&theater.ShowTimings,
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &theater, nil
}

func (r *theaterRepository) Create(ctx context.Context, theater *entity.Theater) error {
	query := `
		INSERT INTO theaters (id, name, address, city, seats_per_row, number_of_rows,
		                      seats_capacity, show_timings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		theater.ID,
		theater.Name,
		theater.Address,
		theater.City,
		theater.SeatsPerRow,
		theater.NumberOfRows,
		theater.SeatsCapacity,
		theater.ShowTimings,
		theater.CreatedAt,
		theater.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create theater",
			zap.Error(err),
			zap.String("name", theater.Name),
		)
		return fmt.Errorf("failed to create theater: %w", err)
	}

	return nil
}

func (r *theaterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE id = $1`

	theater, err := r.scanTheater(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theater by ID",
			zap.Error(err),
			zap.String("theater_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find theater: %w", err)
	}

	return theater, nil
}

func (r *theaterRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Theater, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE id = ANY($1) ORDER BY name`

	return r.queryTheaters(ctx, query, ids)
}

func (r *theaterRepository) FindAll(ctx context.Context) ([]*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters ORDER BY name`

	return r.queryTheaters(ctx, query)
}

func (r *theaterRepository) FindByCity(ctx context.Context, city string) ([]*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE city = $1 ORDER BY name`

	return r.queryTheaters(ctx, query, city)
}

func (r *theaterRepository) queryTheaters(ctx context.Context, query string, args ...any) ([]*entity.Theater, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query theaters", zap.Error(err))
		return nil, fmt.Errorf("failed to find theaters: %w", err)
	}
	defer rows.Close()

	var theaters []*entity.Theater
	for rows.Next() {
		theater, err := r.scanTheater(rows)
		if err != nil {
			r.log.Error("Failed to scan theater row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan theater: %w", err)
		}
		theaters = append(theaters, theater)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return theaters, nil
}

func (r *theaterRepository) Update(ctx context.Context, theater *entity.Theater) error {
	query := `
		UPDATE theaters
		SET name = $2, address = $3, city = $4, seats_per_row = $5,
		    number_of_rows = $6, seats_capacity = $7, show_timings = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		theater.ID,
		theater.Name,
		theater.Address,
		theater.City,
		theater.SeatsPerRow,
		theater.NumberOfRows,
		theater.SeatsCapacity,
		theater.ShowTimings,
		theater.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update theater",
			zap.Error(err),
			zap.String("theater_id", theater.ID.String()),
		)
		return fmt.Errorf("failed to update theater: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("theater not found")
	}

	return nil
}

func (r *theaterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM theaters WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete theater",
			zap.Error(err),
			zap.String("theater_id", id.String()),
		)
		return fmt.Errorf("failed to delete theater: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("theater not found")
	}

	r.log.Info("Theater deleted", zap.String("theater_id", id.String()))
	return nil
}
