package rollover

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type RunResultDTO struct {
	Created int `json:"created"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// Run godoc
// @Summary Run the budget rollover job now
// @Description Replaces every expired budget item with a fresh one for the current period.
// @Tags Rollover
// @Produce json
// @Success 200 {object} RunResultDTO
// @Failure 403 {string} string "User not found"
// @Router /api/rollover/run [post]
// @Security XUserId
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	log.Debug("Running budget rollover job")
	w.Header().Set("Content-Type", "application/json")
	created, err := h.service.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(RunResultDTO{Created: created}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
