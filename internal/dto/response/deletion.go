package response

// Deletion summaries report counts of dependent records removed or updated
// so callers can observe how far a cascade got and reason about retries.

type MovieDeletionResponse struct {
	Message             string                  `json:"message"`
	DeletedMovie        MovieResponse           `json:"deletedMovie"`
	AssociatedDeletions MovieCascadeDeletions   `json:"associatedDeletions"`
}

type MovieCascadeDeletions struct {
	Bookings  int64 `json:"bookings"`
	Shows     int64 `json:"shows"`
	BulkShows int64 `json:"bulkShows"`
}

type TheaterDeletionResponse struct {
	Message             string                  `json:"message"`
	DeletedTheater      TheaterResponse         `json:"deletedTheater"`
	AssociatedDeletions TheaterCascadeDeletions `json:"associatedDeletions"`
	BulkShowsUpdated    int64                   `json:"bulkShowsUpdated"`
}

type TheaterCascadeDeletions struct {
	Bookings int64 `json:"bookings"`
	Shows    int64 `json:"shows"`
}

type ShowDeletionResponse struct {
	Message             string               `json:"message"`
	DeletedShow         ShowResponse         `json:"deletedShow"`
	AssociatedDeletions ShowCascadeDeletions `json:"associatedDeletions"`
}

type ShowCascadeDeletions struct {
	Bookings int64 `json:"bookings"`
}

type BulkShowDeletionResponse struct {
	Message             string                   `json:"message"`
	AssociatedDeletions BulkShowCascadeDeletions `json:"associatedDeletions"`
}

type BulkShowCascadeDeletions struct {
	Bookings int64 `json:"bookings"`
	Shows    int64 `json:"shows"`
}
