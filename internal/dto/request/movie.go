package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1,max=999"`
	ReleaseDate string   `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,required"`
	Language    []string `json:"language" validate:"required,min=1,dive,required"`
	Poster      string   `json:"poster,omitempty"`
}

type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,min=1,max=999"`
	ReleaseDate *string  `json:"releaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,min=1,dive,required"`
	Language    []string `json:"language,omitempty" validate:"omitempty,min=1,dive,required"`
	Poster      *string  `json:"poster,omitempty"`
}

// MovieAllowedUpdates are the only keys a PATCH body may carry. Anything
// else rejects the whole request.
var MovieAllowedUpdates = []string{"title", "description", "duration", "releaseDate", "genre", "language"}

type MovieListQuery struct {
	PaginatedRequest
	Search    string `json:"search"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}
