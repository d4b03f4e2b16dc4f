package response

import (
	"time"

	"movie-ticket-booking/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	ReleaseDate string    `json:"releaseDate"`
	Genre       []string  `json:"genre"`
	Language    []string  `json:"language"`
	Poster      string    `json:"poster"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// MovieListResponse mirrors the paginated movie listing payload
type MovieListResponse struct {
	Movies      []MovieResponse `json:"movies"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Genre:       movie.Genre,
		Language:    movie.Language,
		Poster:      movie.Poster,
		CreatedAt:   movie.CreatedAt,
	}
}
