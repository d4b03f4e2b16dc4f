package request

type ShowRequest struct {
	MovieID   string  `json:"movieId" validate:"required,uuid4"`
	TheaterID string  `json:"theaterId" validate:"required,uuid4"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	ShowTime  string  `json:"showTime" validate:"required"`
	SeatPrice float64 `json:"seatPrice" validate:"omitempty,gt=0"`
}

type BulkShowRequest struct {
	MovieID    string   `json:"movie" validate:"required,uuid4"`
	TheaterIDs []string `json:"theaters" validate:"required,min=1,dive,uuid4"`
	SeatPrice  float64  `json:"seatPrice" validate:"required,gt=0"`
	StartDate  string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"endDate" validate:"required,datetime=2006-01-02"`
}
