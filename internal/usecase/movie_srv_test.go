package usecase

import (
	"context"
	"testing"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMovieService(store *fakeStore) MovieService {
	return NewMovieService(newFakeRepo(store), noopCache(), zap.NewNop())
}

func TestCreateMovie(t *testing.T) {
	store := newFakeStore()
	service := newMovieService(store)

	movie, err := service.CreateMovie(context.Background(), &request.MovieRequest{
		Title:       "Dune",
		Description: "Desert epic",
		Duration:    155,
		ReleaseDate: "2024-03-01",
		Genre:       []string{"Sci-Fi"},
		Language:    []string{"English"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune", movie.Title)
	assert.Len(t, store.movies, 1)
}

func TestCreateMovieValidation(t *testing.T) {
	store := newFakeStore()
	service := newMovieService(store)

	_, err := service.CreateMovie(context.Background(), &request.MovieRequest{
		Title: "Dune",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, store.movies)
}

func TestUpdateMovieRejectsUnknownKeys(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	service := newMovieService(store)

	_, err := service.UpdateMovie(context.Background(), movie.ID.String(), &request.MovieUpdateRequest{}, []string{"rating"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid updates")

	title := "Dune Part Two"
	updated, err := service.UpdateMovie(context.Background(), movie.ID.String(), &request.MovieUpdateRequest{
		Title: &title,
	}, []string{"title"})
	require.NoError(t, err)
	assert.Equal(t, "Dune Part Two", updated.Title)
}

func TestGetMoviesPagination(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 12; i++ {
		store.addMovie("Movie")
	}
	service := newMovieService(store)

	result, err := service.GetMovies(context.Background(), &request.MovieListQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 5},
	})
	require.NoError(t, err)

	assert.Len(t, result.Movies, 5)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
}

func TestGetMovieByIDNotFound(t *testing.T) {
	store := newFakeStore()
	service := newMovieService(store)

	_, err := service.GetMovieByID(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteMovieCascades(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	otherMovie := store.addMovie("Alien")
	theater := store.addTheater("Grand", 10, 5)

	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	otherShow := store.addShow(otherMovie, theater, "2025-06-01", "14:00")

	store.addBooking(show, "alex@example.com", entity.Seat{Row: 1, SeatNumber: 1})
	keptBooking := store.addBooking(otherShow, "sam@example.com", entity.Seat{Row: 1, SeatNumber: 2})

	bulk := &entity.BulkShow{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		MovieID:    movie.ID,
		TheaterIDs: []uuid.UUID{theater.ID},
	}
	store.bulks[bulk.ID] = bulk

	service := newMovieService(store)

	result, err := service.DeleteMovie(context.Background(), movie.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.AssociatedDeletions.Bookings)
	assert.Equal(t, int64(1), result.AssociatedDeletions.Shows)
	assert.Equal(t, int64(1), result.AssociatedDeletions.BulkShows)

	assert.NotContains(t, store.movies, movie.ID)
	assert.Contains(t, store.movies, otherMovie.ID)
	assert.Contains(t, store.shows, otherShow.ID)
	assert.Contains(t, store.bookings, keptBooking.ID)
	assert.Empty(t, store.bulks)
}
