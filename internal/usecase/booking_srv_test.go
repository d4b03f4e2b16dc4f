package usecase

import (
	"context"
	"testing"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingService(store *fakeStore, publisher *fakePublisher) BookingService {
	return NewBookingService(newFakeRepo(store), publisher, zap.NewNop())
}

func bookingRequestFor(show *entity.Show, seats ...entity.Seat) *request.BookingRequest {
	return &request.BookingRequest{
		ShowID:      show.ID.String(),
		Seats:       seats,
		TotalPrice:  float64(len(seats)) * 150,
		Name:        "Alex Doe",
		Email:       "alex@example.com",
		PhoneNumber: "5550001",
	}
}

func TestCreateBooking(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")

	publisher := &fakePublisher{}
	service := newBookingService(store, publisher)

	booking, err := service.CreateBooking(context.Background(), bookingRequestFor(show,
		entity.Seat{Row: 1, SeatNumber: 1},
		entity.Seat{Row: 1, SeatNumber: 2},
	))
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, show.ID.String(), booking.Show.ID)
	assert.Equal(t, "Dune", booking.Show.Movie)
	assert.Len(t, booking.Seats, 2)

	assert.Equal(t, 48, show.AvailableSeats)
	assert.Len(t, show.BookedSeats, 2)
	assert.Len(t, store.bookings, 1)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, booking.ID, publisher.events[0].BookingID)
}

func TestCreateBookingDuplicateSeats(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")

	service := newBookingService(store, &fakePublisher{})

	_, err := service.CreateBooking(context.Background(), bookingRequestFor(show,
		entity.Seat{Row: 2, SeatNumber: 3},
		entity.Seat{Row: 2, SeatNumber: 3},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, store.bookings)
	assert.Equal(t, 50, show.AvailableSeats)
}

func TestCreateBookingShowNotFound(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	delete(store.shows, show.ID)

	service := newBookingService(store, &fakePublisher{})

	_, err := service.CreateBooking(context.Background(), bookingRequestFor(show, entity.Seat{Row: 1, SeatNumber: 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateBookingSeatOutsideGrid(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")

	service := newBookingService(store, &fakePublisher{})

	_, err := service.CreateBooking(context.Background(), bookingRequestFor(show, entity.Seat{Row: 6, SeatNumber: 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seats")
	assert.Contains(t, err.Error(), "row 6 seat 1")
}

func TestCreateBookingSeatConflict(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	show.BookedSeats = []entity.Seat{{Row: 3, SeatNumber: 4}}
	show.AvailableSeats--

	service := newBookingService(store, &fakePublisher{})

	_, err := service.CreateBooking(context.Background(), bookingRequestFor(show,
		entity.Seat{Row: 3, SeatNumber: 4},
		entity.Seat{Row: 3, SeatNumber: 5},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already booked")
	assert.Contains(t, err.Error(), "row 3 seat 4")
	assert.Empty(t, store.bookings)
}

// A losing conditional update with no visible overlap means capacity ran
// out between the read and the reservation.
func TestCreateBookingLostRace(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	store.forceAppendFail = true

	service := newBookingService(store, &fakePublisher{})

	_, err := service.CreateBooking(context.Background(), bookingRequestFor(show, entity.Seat{Row: 1, SeatNumber: 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough available seats")
	assert.Empty(t, store.bookings)
}

func TestCreateBookingCompensatesFailedInsert(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	store.failBookingInsert = true

	service := newBookingService(store, &fakePublisher{})

	_, err := service.CreateBooking(context.Background(), bookingRequestFor(show, entity.Seat{Row: 1, SeatNumber: 1}))
	require.Error(t, err)

	assert.Equal(t, 1, store.removeSeatsCalls)
	assert.Empty(t, show.BookedSeats)
	assert.Equal(t, 50, show.AvailableSeats)
	assert.Empty(t, store.bookings)
}

func TestCreateBookingSurvivesPublisherFailure(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")

	service := newBookingService(store, &fakePublisher{err: assert.AnError})

	booking, err := service.CreateBooking(context.Background(), bookingRequestFor(show, entity.Seat{Row: 1, SeatNumber: 1}))
	require.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Len(t, store.bookings, 1)
}

func TestGetBookingsPagination(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	for i := 0; i < 25; i++ {
		store.addBooking(show, "alex@example.com", entity.Seat{Row: 1, SeatNumber: i + 1})
	}

	service := newBookingService(store, &fakePublisher{})

	result, err := service.GetBookings(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, result.Bookings, 10)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)

	last, err := service.GetBookings(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Bookings, 5)
}

func TestGetBookingsByTheaterFiltersDanglingShows(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")
	gone := store.addShow(movie, theater, "2025-06-02", "10:00")

	store.addBooking(show, "alex@example.com", entity.Seat{Row: 1, SeatNumber: 1})
	store.addBooking(gone, "alex@example.com", entity.Seat{Row: 1, SeatNumber: 2})
	delete(store.shows, gone.ID)

	service := newBookingService(store, &fakePublisher{})

	bookings, err := service.GetBookingsByTheater(context.Background(), theater.ID.String())
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestGetBookingsByDateRange(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	early := store.addShow(movie, theater, "2025-06-01", "10:00")
	late := store.addShow(movie, theater, "2025-07-15", "10:00")

	store.addBooking(early, "alex@example.com", entity.Seat{Row: 1, SeatNumber: 1})
	store.addBooking(late, "alex@example.com", entity.Seat{Row: 1, SeatNumber: 2})

	service := newBookingService(store, &fakePublisher{})

	bookings, err := service.GetBookingsByDateRange(context.Background(), "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = service.GetBookingsByDateRange(context.Background(), "2025-06-30", "2025-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date range")
}

func TestGetBookingsByEmail(t *testing.T) {
	store := newFakeStore()
	movie := store.addMovie("Dune")
	theater := store.addTheater("Grand", 10, 5)
	show := store.addShow(movie, theater, "2025-06-01", "10:00")

	store.addBooking(show, "alex@example.com", entity.Seat{Row: 1, SeatNumber: 1})
	store.addBooking(show, "sam@example.com", entity.Seat{Row: 1, SeatNumber: 2})

	service := newBookingService(store, &fakePublisher{})

	bookings, err := service.GetBookingsByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = service.GetBookingsByEmail(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
