package adaptor

import (
	"net/http"
	"os"
	"path/filepath"

	"movie-ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

// StaticHandler serves poster metadata for the static file tree. The files
// themselves go through the router's file server.
type StaticHandler struct {
	config *utils.Config
	log    *zap.Logger
}

func NewStaticHandler(config *utils.Config, log *zap.Logger) *StaticHandler {
	return &StaticHandler{
		config: config,
		log:    log,
	}
}

// ListPosters handles GET /static/posters/list. It returns the poster file
// names as a plain JSON array, the contract the poster sync job consumes.
func (h *StaticHandler) ListPosters(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(filepath.Join(h.config.Static.Dir, "posters"))
	if err != nil {
		if os.IsNotExist(err) {
			utils.ResponseSuccess(w, "Posters retrieved successfully", []string{})
			return
		}
		h.log.Error("list posters failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	utils.ResponseSuccess(w, "Posters retrieved successfully", names)
}
