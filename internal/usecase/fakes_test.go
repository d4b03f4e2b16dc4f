package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-ticket-booking/internal/data/entity"
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/queue"
	"movie-ticket-booking/pkg/cache"
	"movie-ticket-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore is a shared in-memory backend for the fake repositories. It
// reproduces the storage semantics the services rely on, including the
// conditional seat append.
type fakeStore struct {
	movies   map[uuid.UUID]*entity.Movie
	theaters map[uuid.UUID]*entity.Theater
	shows    map[uuid.UUID]*entity.Show
	bulks    map[uuid.UUID]*entity.BulkShow
	bookings map[uuid.UUID]*entity.Booking

	failBookingInsert bool
	forceAppendFail   bool
	removeSeatsCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies:   make(map[uuid.UUID]*entity.Movie),
		theaters: make(map[uuid.UUID]*entity.Theater),
		shows:    make(map[uuid.UUID]*entity.Show),
		bulks:    make(map[uuid.UUID]*entity.BulkShow),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func newFakeRepo(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		Movie:    &fakeMovieRepo{store},
		Theater:  &fakeTheaterRepo{store},
		Show:     &fakeShowRepo{store},
		BulkShow: &fakeBulkShowRepo{store},
		Booking:  &fakeBookingRepo{store},
	}
}

func noopCache() *cache.Cache {
	return cache.New(nil, utils.RedisConfig{}, zap.NewNop())
}

func (s *fakeStore) addMovie(title string) *entity.Movie {
	movie := &entity.Movie{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title:       title,
		Description: "test movie",
		Duration:    120,
		ReleaseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Genre:       []string{"Drama"},
		Language:    []string{"English"},
	}
	s.movies[movie.ID] = movie
	return movie
}

func (s *fakeStore) addTheater(name string, seatsPerRow, numberOfRows int) *entity.Theater {
	theater := &entity.Theater{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:          name,
		Address:       "1 Main St",
		City:          "Springfield",
		SeatsPerRow:   seatsPerRow,
		NumberOfRows:  numberOfRows,
		SeatsCapacity: seatsPerRow * numberOfRows,
		ShowTimings:   append([]string(nil), entity.DefaultShowTimings...),
	}
	s.theaters[theater.ID] = theater
	return theater
}

func (s *fakeStore) addShow(movie *entity.Movie, theater *entity.Theater, date, showTime string) *entity.Show {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	show := &entity.Show{
		BaseSimple:     entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		MovieID:        movie.ID,
		TheaterID:      theater.ID,
		Date:           day,
		ShowTime:       showTime,
		SeatPrice:      150,
		AvailableSeats: theater.SeatsCapacity,
		BookedSeats:    []entity.Seat{},
	}
	s.shows[show.ID] = show
	return show
}

func (s *fakeStore) addBooking(show *entity.Show, email string, seats ...entity.Seat) *entity.Booking {
	booking := &entity.Booking{
		ID:          uuid.New(),
		ShowID:      show.ID,
		Seats:       seats,
		TotalPrice:  float64(len(seats)) * 150,
		BookingDate: time.Now(),
		Name:        "Test Customer",
		Email:       email,
		PhoneNumber: "5550001",
	}
	s.bookings[booking.ID] = booking
	return booking
}

func (s *fakeStore) showDetail(show *entity.Show) *repository.ShowDetail {
	detail := &repository.ShowDetail{Show: *show}
	if movie, ok := s.movies[show.MovieID]; ok {
		detail.MovieTitle = movie.Title
		detail.MovieDuration = movie.Duration
	}
	if theater, ok := s.theaters[show.TheaterID]; ok {
		detail.TheaterName = theater.Name
		detail.TheaterAddress = theater.Address
		detail.TheaterCity = theater.City
		detail.TheaterSeatsPerRow = theater.SeatsPerRow
		detail.TheaterNumberOfRows = theater.NumberOfRows
		detail.TheaterCapacity = theater.SeatsCapacity
	}
	return detail
}

func (s *fakeStore) bookingDetail(booking *entity.Booking) *repository.BookingDetail {
	detail := &repository.BookingDetail{Booking: *booking}
	if show, ok := s.shows[booking.ShowID]; ok {
		date := show.Date
		showTime := show.ShowTime
		detail.ShowDate = &date
		detail.ShowTime = &showTime
		if movie, ok := s.movies[show.MovieID]; ok {
			title := movie.Title
			detail.MovieTitle = &title
		}
		if theater, ok := s.theaters[show.TheaterID]; ok {
			name := theater.Name
			detail.TheaterName = &name
		}
	}
	return detail
}

type fakeMovieRepo struct{ store *fakeStore }

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.store.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.store.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, offset, limit int, search, sortBy, sortOrder string) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, movie := range f.store.movies {
		if search != "" && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(search)) {
			continue
		}
		movies = append(movies, movie)
	}
	if offset >= len(movies) {
		return nil, nil
	}
	end := offset + limit
	if end > len(movies) {
		end = len(movies)
	}
	return movies[offset:end], nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context, search string) (int64, error) {
	var count int64
	for _, movie := range f.store.movies {
		if search != "" && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(search)) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	if _, ok := f.store.movies[movie.ID]; !ok {
		return fmt.Errorf("movie %s not found", movie.ID)
	}
	f.store.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.store.movies[id]; !ok {
		return fmt.Errorf("movie %s not found", id)
	}
	delete(f.store.movies, id)
	return nil
}

type fakeTheaterRepo struct{ store *fakeStore }

func (f *fakeTheaterRepo) Create(_ context.Context, theater *entity.Theater) error {
	f.store.theaters[theater.ID] = theater
	return nil
}

func (f *fakeTheaterRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Theater, error) {
	return f.store.theaters[id], nil
}

func (f *fakeTheaterRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Theater, error) {
	var theaters []*entity.Theater
	for _, id := range ids {
		if theater, ok := f.store.theaters[id]; ok {
			theaters = append(theaters, theater)
		}
	}
	return theaters, nil
}

func (f *fakeTheaterRepo) FindAll(_ context.Context) ([]*entity.Theater, error) {
	var theaters []*entity.Theater
	for _, theater := range f.store.theaters {
		theaters = append(theaters, theater)
	}
	return theaters, nil
}

func (f *fakeTheaterRepo) FindByCity(_ context.Context, city string) ([]*entity.Theater, error) {
	var theaters []*entity.Theater
	for _, theater := range f.store.theaters {
		if theater.City == city {
			theaters = append(theaters, theater)
		}
	}
	return theaters, nil
}

func (f *fakeTheaterRepo) Update(_ context.Context, theater *entity.Theater) error {
	if _, ok := f.store.theaters[theater.ID]; !ok {
		return fmt.Errorf("theater %s not found", theater.ID)
	}
	f.store.theaters[theater.ID] = theater
	return nil
}

func (f *fakeTheaterRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.store.theaters[id]; !ok {
		return fmt.Errorf("theater %s not found", id)
	}
	delete(f.store.theaters, id)
	return nil
}

type fakeShowRepo struct{ store *fakeStore }

func (f *fakeShowRepo) Create(_ context.Context, show *entity.Show) error {
	f.store.shows[show.ID] = show
	return nil
}

func (f *fakeShowRepo) CreateBatch(_ context.Context, shows []*entity.Show) error {
	for _, show := range shows {
		f.store.shows[show.ID] = show
	}
	return nil
}

func (f *fakeShowRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.ShowDetail, error) {
	show, ok := f.store.shows[id]
	if !ok {
		return nil, nil
	}
	return f.store.showDetail(show), nil
}

func (f *fakeShowRepo) FindByTheater(_ context.Context, theaterID uuid.UUID) ([]*repository.ShowDetail, error) {
	var details []*repository.ShowDetail
	for _, show := range f.store.shows {
		if show.TheaterID == theaterID {
			details = append(details, f.store.showDetail(show))
		}
	}
	return details, nil
}

func (f *fakeShowRepo) FindByMovie(_ context.Context, movieID uuid.UUID) ([]*repository.ShowDetail, error) {
	var details []*repository.ShowDetail
	for _, show := range f.store.shows {
		if show.MovieID == movieID {
			details = append(details, f.store.showDetail(show))
		}
	}
	return details, nil
}

func (f *fakeShowRepo) FindByMovieDateTheater(_ context.Context, movieID uuid.UUID, date time.Time, theaterID uuid.UUID) ([]*repository.ShowDetail, error) {
	var details []*repository.ShowDetail
	for _, show := range f.store.shows {
		if show.MovieID == movieID && show.TheaterID == theaterID && show.Date.Equal(date) {
			details = append(details, f.store.showDetail(show))
		}
	}
	return details, nil
}

func (f *fakeShowRepo) ExistsAt(_ context.Context, theaterID uuid.UUID, date time.Time, showTime string) (bool, error) {
	for _, show := range f.store.shows {
		if show.TheaterID == theaterID && show.Date.Equal(date) && show.ShowTime == showTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeShowRepo) OccupiedSlots(_ context.Context, theaterIDs []uuid.UUID, start, end time.Time) (map[repository.SlotKey]struct{}, error) {
	wanted := make(map[uuid.UUID]struct{}, len(theaterIDs))
	for _, id := range theaterIDs {
		wanted[id] = struct{}{}
	}

	occupied := make(map[repository.SlotKey]struct{})
	for _, show := range f.store.shows {
		if _, ok := wanted[show.TheaterID]; !ok {
			continue
		}
		if show.Date.Before(start) || show.Date.After(end) {
			continue
		}
		occupied[repository.SlotKey{
			TheaterID: show.TheaterID,
			Date:      show.Date.Format("2006-01-02"),
			ShowTime:  show.ShowTime,
		}] = struct{}{}
	}
	return occupied, nil
}

func (f *fakeShowRepo) FindIDsByMovie(_ context.Context, movieID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, show := range f.store.shows {
		if show.MovieID == movieID {
			ids = append(ids, show.ID)
		}
	}
	return ids, nil
}

func (f *fakeShowRepo) FindIDsByTheater(_ context.Context, theaterID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, show := range f.store.shows {
		if show.TheaterID == theaterID {
			ids = append(ids, show.ID)
		}
	}
	return ids, nil
}

func (f *fakeShowRepo) FindIDsForBulk(_ context.Context, movieID uuid.UUID, theaterIDs []uuid.UUID, start, end time.Time) ([]uuid.UUID, error) {
	wanted := make(map[uuid.UUID]struct{}, len(theaterIDs))
	for _, id := range theaterIDs {
		wanted[id] = struct{}{}
	}

	var ids []uuid.UUID
	for _, show := range f.store.shows {
		if show.MovieID != movieID {
			continue
		}
		if _, ok := wanted[show.TheaterID]; !ok {
			continue
		}
		if show.Date.Before(start) || show.Date.After(end) {
			continue
		}
		ids = append(ids, show.ID)
	}
	return ids, nil
}

func (f *fakeShowRepo) AppendBookedSeats(_ context.Context, showID uuid.UUID, seats []entity.Seat) (bool, error) {
	if f.store.forceAppendFail {
		return false, nil
	}

	show, ok := f.store.shows[showID]
	if !ok {
		return false, nil
	}
	if show.AvailableSeats < len(seats) {
		return false, nil
	}
	if len(entity.OverlappingSeats(show.BookedSeats, seats)) > 0 {
		return false, nil
	}

	show.BookedSeats = append(show.BookedSeats, seats...)
	show.AvailableSeats -= len(seats)
	return true, nil
}

func (f *fakeShowRepo) RemoveBookedSeats(_ context.Context, showID uuid.UUID, seats []entity.Seat) error {
	f.store.removeSeatsCalls++

	show, ok := f.store.shows[showID]
	if !ok {
		return nil
	}

	var kept []entity.Seat
	for _, seat := range show.BookedSeats {
		remove := false
		for _, gone := range seats {
			if seat == gone {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, seat)
		}
	}
	show.AvailableSeats += len(show.BookedSeats) - len(kept)
	show.BookedSeats = kept
	return nil
}

func (f *fakeShowRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.store.shows[id]; !ok {
		return fmt.Errorf("show %s not found", id)
	}
	delete(f.store.shows, id)
	return nil
}

func (f *fakeShowRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := f.store.shows[id]; ok {
			delete(f.store.shows, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeBulkShowRepo struct{ store *fakeStore }

func (f *fakeBulkShowRepo) Create(_ context.Context, bulk *entity.BulkShow) error {
	f.store.bulks[bulk.ID] = bulk
	return nil
}

func (f *fakeBulkShowRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BulkShow, error) {
	return f.store.bulks[id], nil
}

func (f *fakeBulkShowRepo) FindAll(_ context.Context) ([]*entity.BulkShow, error) {
	var bulks []*entity.BulkShow
	for _, bulk := range f.store.bulks {
		bulks = append(bulks, bulk)
	}
	return bulks, nil
}

func (f *fakeBulkShowRepo) FindByMovie(_ context.Context, movieID uuid.UUID) ([]*entity.BulkShow, error) {
	var bulks []*entity.BulkShow
	for _, bulk := range f.store.bulks {
		if bulk.MovieID == movieID {
			bulks = append(bulks, bulk)
		}
	}
	return bulks, nil
}

func (f *fakeBulkShowRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.store.bulks[id]; !ok {
		return fmt.Errorf("bulk show %s not found", id)
	}
	delete(f.store.bulks, id)
	return nil
}

func (f *fakeBulkShowRepo) DeleteByMovie(_ context.Context, movieID uuid.UUID) (int64, error) {
	var deleted int64
	for id, bulk := range f.store.bulks {
		if bulk.MovieID == movieID {
			delete(f.store.bulks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeBulkShowRepo) RemoveTheaterFromAll(_ context.Context, theaterID uuid.UUID) (int64, error) {
	var updated int64
	for _, bulk := range f.store.bulks {
		var kept []uuid.UUID
		for _, id := range bulk.TheaterIDs {
			if id != theaterID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(bulk.TheaterIDs) {
			bulk.TheaterIDs = kept
			updated++
		}
	}
	return updated, nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if f.store.failBookingInsert {
		return fmt.Errorf("insert rejected")
	}
	f.store.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.BookingDetail, error) {
	booking, ok := f.store.bookings[id]
	if !ok {
		return nil, nil
	}
	return f.store.bookingDetail(booking), nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, offset, limit int) ([]*repository.BookingDetail, error) {
	var details []*repository.BookingDetail
	for _, booking := range f.store.bookings {
		details = append(details, f.store.bookingDetail(booking))
	}
	if offset >= len(details) {
		return nil, nil
	}
	end := offset + limit
	if end > len(details) {
		end = len(details)
	}
	return details[offset:end], nil
}

func (f *fakeBookingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.store.bookings)), nil
}

func (f *fakeBookingRepo) FindByShow(_ context.Context, showID uuid.UUID) ([]*repository.BookingDetail, error) {
	var details []*repository.BookingDetail
	for _, booking := range f.store.bookings {
		if booking.ShowID == showID {
			details = append(details, f.store.bookingDetail(booking))
		}
	}
	return details, nil
}

func (f *fakeBookingRepo) FindByEmail(_ context.Context, email string) ([]*repository.BookingDetail, error) {
	var details []*repository.BookingDetail
	for _, booking := range f.store.bookings {
		if booking.Email == email {
			details = append(details, f.store.bookingDetail(booking))
		}
	}
	return details, nil
}

func (f *fakeBookingRepo) FindByTheater(_ context.Context, theaterID uuid.UUID) ([]*repository.BookingDetail, error) {
	var details []*repository.BookingDetail
	for _, booking := range f.store.bookings {
		show, ok := f.store.shows[booking.ShowID]
		if !ok || show.TheaterID != theaterID {
			continue
		}
		details = append(details, f.store.bookingDetail(booking))
	}
	return details, nil
}

func (f *fakeBookingRepo) FindByMovie(_ context.Context, movieID uuid.UUID) ([]*repository.BookingDetail, error) {
	var details []*repository.BookingDetail
	for _, booking := range f.store.bookings {
		show, ok := f.store.shows[booking.ShowID]
		if !ok || show.MovieID != movieID {
			continue
		}
		details = append(details, f.store.bookingDetail(booking))
	}
	return details, nil
}

func (f *fakeBookingRepo) FindByDateRange(_ context.Context, start, end time.Time) ([]*repository.BookingDetail, error) {
	var details []*repository.BookingDetail
	for _, booking := range f.store.bookings {
		show, ok := f.store.shows[booking.ShowID]
		if !ok {
			continue
		}
		if show.Date.Before(start) || show.Date.After(end) {
			continue
		}
		details = append(details, f.store.bookingDetail(booking))
	}
	return details, nil
}

func (f *fakeBookingRepo) DeleteByShow(_ context.Context, showID uuid.UUID) (int64, error) {
	var deleted int64
	for id, booking := range f.store.bookings {
		if booking.ShowID == showID {
			delete(f.store.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeBookingRepo) DeleteByShowIDs(_ context.Context, showIDs []uuid.UUID) (int64, error) {
	var deleted int64
	for _, showID := range showIDs {
		count, _ := f.DeleteByShow(context.Background(), showID)
		deleted += count
	}
	return deleted, nil
}

// fakePublisher records published booking events.
type fakePublisher struct {
	events []queue.BookingCreatedEvent
	err    error
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, event queue.BookingCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
