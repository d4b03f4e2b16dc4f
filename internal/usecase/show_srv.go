package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/dto/request"
	"movie-ticket-booking/internal/dto/response"
	"movie-ticket-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowService interface {
	CreateShow(ctx context.Context, req *request.ShowRequest) (*response.ShowResponse, error)
	CreateBulkShow(ctx context.Context, req *request.BulkShowRequest) (*response.BulkShowCreateResponse, error)
	GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error)
	GetShowsByTheater(ctx context.Context, theaterID string) ([]response.ShowResponse, error)
	GetShowsByMovie(ctx context.Context, movieID string) ([]response.ShowResponse, error)
	GetShowsForMovieDateTheater(ctx context.Context, movieID, date, theaterID string) ([]response.ShowResponse, error)
	GetBulkShows(ctx context.Context) ([]response.BulkShowResponse, error)
	GetBulkShowByID(ctx context.Context, bulkShowID string) (*response.BulkShowResponse, error)
	GetBulkShowsByMovie(ctx context.Context, movieID string) ([]response.BulkShowResponse, error)
	DeleteShow(ctx context.Context, showID string) (*response.ShowDeletionResponse, error)
	DeleteBulkShow(ctx context.Context, bulkShowID string) (*response.BulkShowDeletionResponse, error)
}

type showService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowService(repo *repository.Repository, log *zap.Logger) ShowService {
	return &showService{
		repo: repo,
		log:  log.With(zap.String("service", "show")),
	}
}

func (s *showService) CreateShow(ctx context.Context, req *request.ShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", req.TheaterID, err)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("get theater %s: %w", req.TheaterID, err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s not found", req.TheaterID)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", req.MovieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	if !theater.HasShowTiming(req.ShowTime) {
		return nil, fmt.Errorf("invalid show time %s for theater %s", req.ShowTime, theater.Name)
	}

	// One show per (theater, date, showTime)
	exists, err := s.repo.Show.ExistsAt(ctx, theaterID, date, req.ShowTime)
	if err != nil {
		return nil, fmt.Errorf("check show conflict: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("invalid request: show time conflicts with an existing show")
	}

	show := &entity.Show{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:        movieID,
		TheaterID:      theaterID,
		Date:           date,
		ShowTime:       req.ShowTime,
		SeatPrice:      req.SeatPrice,
		AvailableSeats: theater.SeatsCapacity,
		BookedSeats:    []entity.Seat{},
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("theater_id", req.TheaterID),
		zap.String("date", req.Date),
		zap.String("show_time", req.ShowTime),
	)

	resp := response.ShowToResponse(show,
		response.MovieRef{ID: movie.ID.String(), Title: movie.Title, Duration: movie.Duration},
		response.TheaterRef{ID: theater.ID.String(), Name: theater.Name, Address: theater.Address, City: theater.City},
	)
	return &resp, nil
}

// expandShows materializes one show per (day, theater, show timing) tuple
// over the bulk show's inclusive date range. Tuples already present in
// occupied are skipped and counted instead of generated, so an expansion
// never produces a second show for a slot.
func expandShows(bulk *entity.BulkShow, theaters []*entity.Theater, occupied map[repository.SlotKey]struct{}, now time.Time) ([]*entity.Show, int) {
	var shows []*entity.Show
	skipped := 0

	for day := bulk.StartDate; !day.After(bulk.EndDate); day = day.AddDate(0, 0, 1) {
		for _, theater := range theaters {
			for _, showTime := range theater.ShowTimings {
				key := repository.SlotKey{
					TheaterID: theater.ID,
					Date:      day.Format("2006-01-02"),
					ShowTime:  showTime,
				}
				if _, taken := occupied[key]; taken {
					skipped++
					continue
				}

				shows = append(shows, &entity.Show{
					BaseSimple: entity.BaseSimple{
						ID:        uuid.New(),
						CreatedAt: now,
					},
					MovieID:        bulk.MovieID,
					TheaterID:      theater.ID,
					Date:           day,
					ShowTime:       showTime,
					SeatPrice:      bulk.SeatPrice,
					AvailableSeats: theater.SeatsCapacity,
					BookedSeats:    []entity.Seat{},
				})
			}
		}
	}

	return shows, skipped
}

func (s *showService) CreateBulkShow(ctx context.Context, req *request.BulkShowRequest) (*response.BulkShowCreateResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create bulk show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("invalid date range: end date %s precedes start date %s", req.EndDate, req.StartDate)
	}

	theaterIDs := make([]uuid.UUID, len(req.TheaterIDs))
	for i, raw := range req.TheaterIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid theater ID format %s: %w", raw, err)
		}
		theaterIDs[i] = id
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", req.MovieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	theaters, err := s.repo.Theater.FindByIDs(ctx, theaterIDs)
	if err != nil {
		return nil, fmt.Errorf("get theaters: %w", err)
	}
	if len(theaters) != len(theaterIDs) {
		resolved := make(map[uuid.UUID]struct{}, len(theaters))
		for _, theater := range theaters {
			resolved[theater.ID] = struct{}{}
		}
		for _, id := range theaterIDs {
			if _, ok := resolved[id]; !ok {
				return nil, fmt.Errorf("theater %s not found", id.String())
			}
		}
	}

	bulk := &entity.BulkShow{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:    movieID,
		TheaterIDs: theaterIDs,
		SeatPrice:  req.SeatPrice,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	if err := s.repo.BulkShow.Create(ctx, bulk); err != nil {
		return nil, fmt.Errorf("create bulk show: %w", err)
	}

	occupied, err := s.repo.Show.OccupiedSlots(ctx, theaterIDs, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("find occupied slots: %w", err)
	}

	shows, skipped := expandShows(bulk, theaters, occupied, time.Now())

	if err := s.repo.Show.CreateBatch(ctx, shows); err != nil {
		return nil, fmt.Errorf("create shows for bulk show %s: %w", bulk.ID.String(), err)
	}

	s.log.Info("Bulk show expanded",
		zap.String("bulk_show_id", bulk.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Int("generated", len(shows)),
		zap.Int("skipped", skipped),
	)

	return &response.BulkShowCreateResponse{
		BulkShow:             s.bulkShowResponse(bulk, movie, theaters),
		IndividualShowsCount: len(shows),
		SkippedConflicts:     skipped,
	}, nil
}

func (s *showService) bulkShowResponse(bulk *entity.BulkShow, movie *entity.Movie, theaters []*entity.Theater) response.BulkShowResponse {
	movieRef := response.MovieRef{ID: bulk.MovieID.String()}
	if movie != nil {
		movieRef.Title = movie.Title
	}

	theaterRefs := make([]response.TheaterRef, len(theaters))
	for i, theater := range theaters {
		theaterRefs[i] = response.TheaterRef{
			ID:   theater.ID.String(),
			Name: theater.Name,
			City: theater.City,
		}
	}

	return response.BulkShowToResponse(bulk, movieRef, theaterRefs)
}

func showDetailToResponse(detail *repository.ShowDetail) response.ShowResponse {
	return response.ShowToResponse(&detail.Show,
		response.MovieRef{ID: detail.MovieID.String(), Title: detail.MovieTitle, Duration: detail.MovieDuration},
		response.TheaterRef{ID: detail.TheaterID.String(), Name: detail.TheaterName, Address: detail.TheaterAddress, City: detail.TheaterCity},
	)
}

func (s *showService) GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	detail, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show %s: %w", showID, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("show %s not found", showID)
	}

	resp := showDetailToResponse(detail)
	return &resp, nil
}

func (s *showService) GetShowsByTheater(ctx context.Context, theaterID string) ([]response.ShowResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	details, err := s.repo.Show.FindByTheater(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shows for theater %s: %w", theaterID, err)
	}

	return showDetailsToResponses(details), nil
}

func (s *showService) GetShowsByMovie(ctx context.Context, movieID string) ([]response.ShowResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	details, err := s.repo.Show.FindByMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shows for movie %s: %w", movieID, err)
	}

	return showDetailsToResponses(details), nil
}

func (s *showService) GetShowsForMovieDateTheater(ctx context.Context, movieID, date, theaterID string) ([]response.ShowResponse, error) {
	mid, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}
	tid, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, err)
	}

	details, err := s.repo.Show.FindByMovieDateTheater(ctx, mid, day, tid)
	if err != nil {
		return nil, fmt.Errorf("get shows: %w", err)
	}

	return showDetailsToResponses(details), nil
}

func showDetailsToResponses(details []*repository.ShowDetail) []response.ShowResponse {
	responses := make([]response.ShowResponse, len(details))
	for i, detail := range details {
		responses[i] = showDetailToResponse(detail)
	}
	return responses
}

func (s *showService) GetBulkShows(ctx context.Context) ([]response.BulkShowResponse, error) {
	bulks, err := s.repo.BulkShow.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get bulk shows: %w", err)
	}
	return s.bulkShowResponses(ctx, bulks)
}

func (s *showService) GetBulkShowByID(ctx context.Context, bulkShowID string) (*response.BulkShowResponse, error) {
	id, err := uuid.Parse(bulkShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid bulk show ID format %s: %w", bulkShowID, err)
	}

	bulk, err := s.repo.BulkShow.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bulk show %s: %w", bulkShowID, err)
	}
	if bulk == nil {
		return nil, fmt.Errorf("bulk show %s not found", bulkShowID)
	}

	responses, err := s.bulkShowResponses(ctx, []*entity.BulkShow{bulk})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *showService) GetBulkShowsByMovie(ctx context.Context, movieID string) ([]response.BulkShowResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	bulks, err := s.repo.BulkShow.FindByMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bulk shows for movie %s: %w", movieID, err)
	}
	return s.bulkShowResponses(ctx, bulks)
}

// bulkShowResponses resolves the movie and theater refs for each bulk
// show. A dangling movie or theater reference degrades to a bare id
// rather than failing the read.
func (s *showService) bulkShowResponses(ctx context.Context, bulks []*entity.BulkShow) ([]response.BulkShowResponse, error) {
	responses := make([]response.BulkShowResponse, len(bulks))
	for i, bulk := range bulks {
		movie, err := s.repo.Movie.FindByID(ctx, bulk.MovieID)
		if err != nil {
			return nil, fmt.Errorf("get movie for bulk show %s: %w", bulk.ID.String(), err)
		}

		theaters, err := s.repo.Theater.FindByIDs(ctx, bulk.TheaterIDs)
		if err != nil {
			return nil, fmt.Errorf("get theaters for bulk show %s: %w", bulk.ID.String(), err)
		}

		responses[i] = s.bulkShowResponse(bulk, movie, theaters)
	}
	return responses, nil
}

// DeleteShow removes the show's bookings first so no booking ever points
// at a missing show longer than the gap between the two deletes.
func (s *showService) DeleteShow(ctx context.Context, showID string) (*response.ShowDeletionResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	detail, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show %s: %w", showID, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("show %s not found", showID)
	}

	deletedBookings, err := s.repo.Booking.DeleteByShow(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete bookings for show %s: %w", showID, err)
	}

	if err := s.repo.Show.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete show %s: %w", showID, err)
	}

	s.log.Info("Show cascade deleted",
		zap.String("show_id", showID),
		zap.Int64("bookings", deletedBookings),
	)

	return &response.ShowDeletionResponse{
		Message:     "Show and all associated bookings deleted successfully",
		DeletedShow: showDetailToResponse(detail),
		AssociatedDeletions: response.ShowCascadeDeletions{
			Bookings: deletedBookings,
		},
	}, nil
}

// DeleteBulkShow recomputes the shows the bulk show generated (same
// movie, theater in its set, date in its range) and removes them with
// their bookings before removing the bulk show record.
func (s *showService) DeleteBulkShow(ctx context.Context, bulkShowID string) (*response.BulkShowDeletionResponse, error) {
	id, err := uuid.Parse(bulkShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid bulk show ID format %s: %w", bulkShowID, err)
	}

	bulk, err := s.repo.BulkShow.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bulk show %s: %w", bulkShowID, err)
	}
	if bulk == nil {
		return nil, fmt.Errorf("bulk show %s not found", bulkShowID)
	}

	showIDs, err := s.repo.Show.FindIDsForBulk(ctx, bulk.MovieID, bulk.TheaterIDs, bulk.StartDate, bulk.EndDate)
	if err != nil {
		return nil, fmt.Errorf("find shows for bulk show %s: %w", bulkShowID, err)
	}

	deletedBookings, err := s.repo.Booking.DeleteByShowIDs(ctx, showIDs)
	if err != nil {
		return nil, fmt.Errorf("delete bookings for bulk show %s: %w", bulkShowID, err)
	}

	deletedShows, err := s.repo.Show.DeleteByIDs(ctx, showIDs)
	if err != nil {
		return nil, fmt.Errorf("delete shows for bulk show %s: %w", bulkShowID, err)
	}

	if err := s.repo.BulkShow.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete bulk show %s: %w", bulkShowID, err)
	}

	s.log.Info("Bulk show cascade deleted",
		zap.String("bulk_show_id", bulkShowID),
		zap.Int64("bookings", deletedBookings),
		zap.Int64("shows", deletedShows),
	)

	return &response.BulkShowDeletionResponse{
		Message: "Bulk show and associated individual shows deleted successfully",
		AssociatedDeletions: response.BulkShowCascadeDeletions{
			Bookings: deletedBookings,
			Shows:    deletedShows,
		},
	}, nil
}
