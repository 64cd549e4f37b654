package community

import (
	"net/http"

	"github.com/dstasiak/habitflow/internal/config"
)

type Handler struct {
	service CommunityService
}

func NewHandler(service CommunityService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to compute community stats")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}
