package request

type TheaterRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	SeatsPerRow  int    `json:"seatsPerRow" validate:"required,min=1,max=100"`
	NumberOfRows int    `json:"numberOfRows" validate:"required,min=1,max=100"`
}

type TheaterUpdateRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	SeatsPerRow  *int     `json:"seatsPerRow,omitempty" validate:"omitempty,min=1,max=100"`
	NumberOfRows *int     `json:"numberOfRows,omitempty" validate:"omitempty,min=1,max=100"`
	ShowTimings  []string `json:"showTimings,omitempty" validate:"omitempty,min=1,dive,required"`
}

var TheaterAllowedUpdates = []string{"name", "address", "city", "seatsPerRow", "numberOfRows", "showTimings"}
