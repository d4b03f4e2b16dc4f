package response

import (
	"time"

	"movie-ticket-booking/internal/data/entity"
)

// MovieRef and TheaterRef are the populated parent summaries embedded in
// show and booking payloads.
type MovieRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration,omitempty"`
}

type TheaterRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

type ShowResponse struct {
	ID             string        `json:"id"`
	Movie          MovieRef      `json:"movie"`
	Theater        TheaterRef    `json:"theater"`
	Date           string        `json:"date"`
	ShowTime       string        `json:"showTime"`
	SeatPrice      float64       `json:"seatPrice,omitempty"`
	AvailableSeats int           `json:"availableSeats"`
	BookedSeats    []entity.Seat `json:"bookedSeats"`
	CreatedAt      time.Time     `json:"created_at,omitempty"`
}

type BulkShowResponse struct {
	ID        string       `json:"id"`
	Movie     MovieRef     `json:"movie"`
	Theaters  []TheaterRef `json:"theaters"`
	SeatPrice float64      `json:"seatPrice"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
}

// BulkShowCreateResponse reports how the expansion went alongside the
// stored bulk show.
type BulkShowCreateResponse struct {
	BulkShow             BulkShowResponse `json:"bulkShow"`
	IndividualShowsCount int              `json:"individualShowsCount"`
	SkippedConflicts     int              `json:"skippedConflicts"`
}

func ShowToResponse(show *entity.Show, movie MovieRef, theater TheaterRef) ShowResponse {
	bookedSeats := show.BookedSeats
	if bookedSeats == nil {
		bookedSeats = []entity.Seat{}
	}
	return ShowResponse{
		ID:             show.ID.String(),
		Movie:          movie,
		Theater:        theater,
		Date:           show.Date.Format("2006-01-02"),
		ShowTime:       show.ShowTime,
		SeatPrice:      show.SeatPrice,
		AvailableSeats: show.AvailableSeats,
		BookedSeats:    bookedSeats,
		CreatedAt:      show.CreatedAt,
	}
}

func BulkShowToResponse(bulk *entity.BulkShow, movie MovieRef, theaters []TheaterRef) BulkShowResponse {
	if theaters == nil {
		theaters = []TheaterRef{}
	}
	return BulkShowResponse{
		ID:        bulk.ID.String(),
		Movie:     movie,
		Theaters:  theaters,
		SeatPrice: bulk.SeatPrice,
		StartDate: bulk.StartDate.Format("2006-01-02"),
		EndDate:   bulk.EndDate.Format("2006-01-02"),
	}
}
