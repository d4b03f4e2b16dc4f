package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/dto/request"
	"movie-ticket-booking/internal/dto/response"
	"movie-ticket-booking/pkg/cache"
	"movie-ticket-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const movieCachePrefix = "movies:"

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovies(ctx context.Context, query *request.MovieListQuery) (*response.MovieListResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest, updatedKeys []string) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) (*response.MovieDeletionResponse, error)
}

type movieService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewMovieService(repo *repository.Repository, cacheStore *cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		cache: cacheStore,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid release date %s: %w", req.ReleaseDate, err)
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		ReleaseDate: releaseDate,
		Genre:       req.Genre,
		Language:    req.Language,
		Poster:      req.Poster,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.cache.InvalidatePrefix(ctx, movieCachePrefix)

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovies(ctx context.Context, query *request.MovieListQuery) (*response.MovieListResponse, error) {
	limit := query.Limit()
	offset := query.Offset()

	cacheKey := fmt.Sprintf("%slist:%d:%d:%s:%s:%s", movieCachePrefix, query.Page, limit, query.Search, query.SortBy, query.SortOrder)
	var cached response.MovieListResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	movies, err := s.repo.Movie.FindAll(ctx, offset, limit, query.Search, query.SortBy, query.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, query.Search)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	result := &response.MovieListResponse{
		Movies:      movieResponses,
		TotalPages:  totalPages,
		CurrentPage: query.Page,
	}
	s.cache.Set(ctx, cacheKey, result)

	return result, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	cacheKey := movieCachePrefix + "id:" + movieID
	var cached response.MovieResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	resp := response.MovieToResponse(movie)
	s.cache.Set(ctx, cacheKey, resp)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest, updatedKeys []string) (*response.MovieResponse, error) {
	if err := validateUpdateKeys(updatedKeys, request.MovieAllowedUpdates); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Duration != nil {
		movie.Duration = *req.Duration
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid release date %s: %w", *req.ReleaseDate, err)
		}
		movie.ReleaseDate = releaseDate
	}
	if req.Genre != nil {
		movie.Genre = req.Genre
	}
	if req.Language != nil {
		movie.Language = req.Language
	}
	if req.Poster != nil {
		movie.Poster = *req.Poster
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie %s: %w", movieID, err)
	}

	s.cache.InvalidatePrefix(ctx, movieCachePrefix)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// DeleteMovie cascades bottom-up: bookings of every dependent show first,
// then the shows, then bulk shows referencing the movie, then the movie
// itself, so an external reader never sees a booking whose parents are
// gone while its show still resolves.
func (s *movieService) DeleteMovie(ctx context.Context, movieID string) (*response.MovieDeletionResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	showIDs, err := s.repo.Show.FindIDsByMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find shows for movie %s: %w", movieID, err)
	}

	deletedBookings, err := s.repo.Booking.DeleteByShowIDs(ctx, showIDs)
	if err != nil {
		return nil, fmt.Errorf("delete bookings for movie %s: %w", movieID, err)
	}

	deletedShows, err := s.repo.Show.DeleteByIDs(ctx, showIDs)
	if err != nil {
		return nil, fmt.Errorf("delete shows for movie %s: %w", movieID, err)
	}

	deletedBulkShows, err := s.repo.BulkShow.DeleteByMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete bulk shows for movie %s: %w", movieID, err)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete movie %s: %w", movieID, err)
	}

	s.cache.InvalidatePrefix(ctx, movieCachePrefix)

	s.log.Info("Movie cascade deleted",
		zap.String("movie_id", movieID),
		zap.Int64("bookings", deletedBookings),
		zap.Int64("shows", deletedShows),
		zap.Int64("bulk_shows", deletedBulkShows),
	)

	return &response.MovieDeletionResponse{
		Message:      "Movie and all associated data deleted successfully",
		DeletedMovie: response.MovieToResponse(movie),
		AssociatedDeletions: response.MovieCascadeDeletions{
			Bookings:  deletedBookings,
			Shows:     deletedShows,
			BulkShows: deletedBulkShows,
		},
	}, nil
}

// validateUpdateKeys rejects a PATCH whose body carries any key outside
// the allowlist.
func validateUpdateKeys(keys, allowed []string) error {
	for _, key := range keys {
		ok := false
		for _, candidate := range allowed {
			if key == candidate {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid updates: field %q is not allowed", key)
		}
	}
	return nil
}
