package adaptor

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"movie-ticket-booking/internal/dto/request"
	"movie-ticket-booking/internal/usecase"
	"movie-ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxPosterSize bounds the in-memory part of a multipart upload.
const maxPosterSize = 10 << 20

type MovieHandler struct {
	service usecase.MovieService
	config  *utils.Config
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, config *utils.Config, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		config:  config,
		log:     log,
	}
}

// CreateMovie handles POST /api/movies. The body is either JSON or
// multipart form data with an optional poster image.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxPosterSize); err != nil {
			utils.ResponseBadRequest(w, "Invalid multipart form", nil)
			return
		}

		req.Title = r.FormValue("title")
		req.Description = r.FormValue("description")
		req.Duration = utils.ParseInt(r.FormValue("duration"), 0)
		req.ReleaseDate = r.FormValue("releaseDate")

		genre, err := parseStringArray(r.FormValue("genre"))
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid genre value", nil)
			return
		}
		req.Genre = genre

		language, err := parseStringArray(r.FormValue("language"))
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid language value", nil)
			return
		}
		req.Language = language

		posterURL, err := h.savePoster(r, req.Title)
		if err != nil {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		req.Poster = posterURL
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// GetMovies handles GET /api/movies with pagination, search and sorting.
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := &request.MovieListQuery{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(params.Get("page"), 1),
			PerPage: utils.ParseInt(params.Get("limit"), 10),
		},
		Search:    params.Get("search"),
		SortBy:    params.Get("sortBy"),
		SortOrder: params.Get("sortOrder"),
	}

	movies, err := h.service.GetMovies(r.Context(), query)
	if err != nil {
		handleServiceError(h.log, w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// UpdateMovie handles PATCH /api/movies/{id}. Only whitelisted keys may
// appear in the body; a poster file may ride along in multipart form data.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	var req request.MovieUpdateRequest
	var updatedKeys []string

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxPosterSize); err != nil {
			utils.ResponseBadRequest(w, "Invalid multipart form", nil)
			return
		}

		for key := range r.MultipartForm.Value {
			updatedKeys = append(updatedKeys, key)
		}

		if title := r.FormValue("title"); title != "" {
			req.Title = &title
		}
		if description, ok := formValue(r, "description"); ok {
			req.Description = &description
		}
		if raw, ok := formValue(r, "duration"); ok {
			duration := utils.ParseInt(raw, 0)
			req.Duration = &duration
		}
		if releaseDate, ok := formValue(r, "releaseDate"); ok {
			req.ReleaseDate = &releaseDate
		}
		if raw, ok := formValue(r, "genre"); ok {
			genre, err := parseStringArray(raw)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid genre value", nil)
				return
			}
			req.Genre = genre
		}
		if raw, ok := formValue(r, "language"); ok {
			language, err := parseStringArray(raw)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid language value", nil)
				return
			}
			req.Language = language
		}

		title := r.FormValue("title")
		if title == "" {
			current, err := h.service.GetMovieByID(r.Context(), movieID)
			if err != nil {
				handleServiceError(h.log, w, err, "update movie")
				return
			}
			title = current.Title
		}
		posterURL, err := h.savePoster(r, title)
		if err != nil {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		if posterURL != "" {
			req.Poster = &posterURL
		}
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}

		updatedKeys, err = bodyKeys(body)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}

		if err := json.Unmarshal(body, &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req, updatedKeys)
	if err != nil {
		handleServiceError(h.log, w, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	result, err := h.service.DeleteMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", result)
}

// savePoster stores an uploaded poster under the static posters directory
// and returns its public URL. Returns "" when the form has no poster file.
func (h *MovieHandler) savePoster(r *http.Request, title string) (string, error) {
	file, header, err := r.FormFile("poster")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("invalid poster file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", fmt.Errorf("invalid poster format, only jpg, jpeg and png are accepted")
	}

	filename := utils.PosterFilename(title, header.Filename)
	posterDir := filepath.Join(h.config.Static.Dir, "posters")
	if err := os.MkdirAll(posterDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare poster directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(posterDir, filename))
	if err != nil {
		return "", fmt.Errorf("store poster: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("store poster: %w", err)
	}

	return fmt.Sprintf("%s/static/posters/%s", h.config.Static.PosterBaseURL, filename), nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseStringArray accepts a JSON array, the single-quoted variant some
// clients send in form fields, or a bare value treated as a one-element
// array.
func parseStringArray(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "[") {
		return []string{raw}, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		if err2 := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &values); err2 != nil {
			return nil, err
		}
	}
	return values, nil
}

// bodyKeys returns the top-level keys of a JSON object body.
func bodyKeys(body []byte) ([]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	return keys, nil
}
