package list_grounds

import (
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
)

type Handler struct {
	service GroundsService
	logger  Logger
}

func NewHandler(service GroundsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /grounds - Failed to list grounds: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
