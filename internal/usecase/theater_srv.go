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

const theaterCachePrefix = "theaters:"

type TheaterService interface {
	CreateTheater(ctx context.Context, req *request.TheaterRequest) (*response.TheaterResponse, error)
	GetTheaters(ctx context.Context) ([]response.TheaterResponse, error)
	GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error)
	GetTheatersByCity(ctx context.Context, city string) ([]response.TheaterResponse, error)
	UpdateTheater(ctx context.Context, theaterID string, req *request.TheaterUpdateRequest, updatedKeys []string) (*response.TheaterResponse, error)
	DeleteTheater(ctx context.Context, theaterID string) (*response.TheaterDeletionResponse, error)
}

type theaterService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewTheaterService(repo *repository.Repository, cacheStore *cache.Cache, log *zap.Logger) TheaterService {
	return &theaterService{
		repo:  repo,
		cache: cacheStore,
		log:   log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) CreateTheater(ctx context.Context, req *request.TheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		SeatsPerRow:   req.SeatsPerRow,
		NumberOfRows:  req.NumberOfRows,
		SeatsCapacity: req.SeatsPerRow * req.NumberOfRows,
		ShowTimings:   entity.DefaultShowTimings,
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		return nil, fmt.Errorf("create theater: %w", err)
	}

	s.cache.InvalidatePrefix(ctx, theaterCachePrefix)

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name),
		zap.Int("seats_capacity", theater.SeatsCapacity),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) GetTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	cacheKey := theaterCachePrefix + "all"
	var cached []response.TheaterResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get theaters: %w", err)
	}

	responses := make([]response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		responses[i] = response.TheaterToResponse(theater)
	}

	s.cache.Set(ctx, cacheKey, responses)
	return responses, nil
}

func (s *theaterService) GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get theater %s: %w", theaterID, err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s not found", theaterID)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) GetTheatersByCity(ctx context.Context, city string) ([]response.TheaterResponse, error) {
	cacheKey := theaterCachePrefix + "city:" + city
	var cached []response.TheaterResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	theaters, err := s.repo.Theater.FindByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("get theaters in city %s: %w", city, err)
	}
	if len(theaters) == 0 {
		return nil, fmt.Errorf("theaters not found in city %s", city)
	}

	responses := make([]response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		responses[i] = response.TheaterToResponse(theater)
	}

	s.cache.Set(ctx, cacheKey, responses)
	return responses, nil
}

func (s *theaterService) UpdateTheater(ctx context.Context, theaterID string, req *request.TheaterUpdateRequest, updatedKeys []string) (*response.TheaterResponse, error) {
	if err := validateUpdateKeys(updatedKeys, request.TheaterAllowedUpdates); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get theater %s: %w", theaterID, err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s not found", theaterID)
	}

	if req.Name != nil {
		theater.Name = *req.Name
	}
	if req.Address != nil {
		theater.Address = *req.Address
	}
	if req.City != nil {
		theater.City = *req.City
	}
	if req.SeatsPerRow != nil {
		theater.SeatsPerRow = *req.SeatsPerRow
	}
	if req.NumberOfRows != nil {
		theater.NumberOfRows = *req.NumberOfRows
	}
	if req.ShowTimings != nil {
		theater.ShowTimings = req.ShowTimings
	}
	// Capacity stays derived from the grid
	theater.SeatsCapacity = theater.SeatsPerRow * theater.NumberOfRows
	theater.UpdatedAt = time.Now()

	if err := s.repo.Theater.Update(ctx, theater); err != nil {
		return nil, fmt.Errorf("update theater %s: %w", theaterID, err)
	}

	s.cache.InvalidatePrefix(ctx, theaterCachePrefix)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

// DeleteTheater cascades like DeleteMovie, except bulk shows referencing
// the theater are edited (theater pulled from their set), not deleted.
func (s *theaterService) DeleteTheater(ctx context.Context, theaterID string) (*response.TheaterDeletionResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get theater %s: %w", theaterID, err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s not found", theaterID)
	}

	showIDs, err := s.repo.Show.FindIDsByTheater(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find shows for theater %s: %w", theaterID, err)
	}

	deletedBookings, err := s.repo.Booking.DeleteByShowIDs(ctx, showIDs)
	if err != nil {
		return nil, fmt.Errorf("delete bookings for theater %s: %w", theaterID, err)
	}

	deletedShows, err := s.repo.Show.DeleteByIDs(ctx, showIDs)
	if err != nil {
		return nil, fmt.Errorf("delete shows for theater %s: %w", theaterID, err)
	}

	updatedBulkShows, err := s.repo.BulkShow.RemoveTheaterFromAll(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update bulk shows for theater %s: %w", theaterID, err)
	}

	if err := s.repo.Theater.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete theater %s: %w", theaterID, err)
	}

	s.cache.InvalidatePrefix(ctx, theaterCachePrefix)

	s.log.Info("Theater cascade deleted",
		zap.String("theater_id", theaterID),
		zap.Int64("bookings", deletedBookings),
		zap.Int64("shows", deletedShows),
		zap.Int64("bulk_shows_updated", updatedBulkShows),
	)

	return &response.TheaterDeletionResponse{
		Message:        "Theater and all associated data deleted successfully",
		DeletedTheater: response.TheaterToResponse(theater),
		AssociatedDeletions: response.TheaterCascadeDeletions{
			Bookings: deletedBookings,
			Shows:    deletedShows,
		},
		BulkShowsUpdated: updatedBulkShows,
	}, nil
}
