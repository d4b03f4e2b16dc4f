package response

import (
	"movie-ticket-booking/internal/data/entity"
)

type TheaterResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	SeatsPerRow   int      `json:"seatsPerRow"`
	NumberOfRows  int      `json:"numberOfRows"`
	SeatsCapacity int      `json:"seatsCapacity"`
	ShowTimings   []string `json:"showTimings"`
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:            theater.ID.String(),
		Name:          theater.Name,
		Address:       theater.Address,
		City:          theater.City,
		SeatsPerRow:   theater.SeatsPerRow,
		NumberOfRows:  theater.NumberOfRows,
		SeatsCapacity: theater.SeatsCapacity,
		ShowTimings:   theater.ShowTimings,
	}
}
