package get_ground

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/service/grounds"
)

const (
	msgInvalidGroundID = "некорректный идентификатор площадки"
	msgGroundNotFound  = "площадка не найдена"
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

// Handle GET /api/v1/grounds/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	groundID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || groundID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidGroundID)
		return
	}

	result, err := h.service.GetByID(r.Context(), groundID)
	if err != nil {
		switch {
		case errors.Is(err, grounds.ErrGroundNotFound):
			h.logger.Warn("GET /grounds/{id} - Ground not found: ground_id=%d", groundID)
			handlers.RespondNotFound(w, msgGroundNotFound)

		default:
			h.logger.Error("GET /grounds/{id} - Failed to get ground: ground_id=%d: %v", groundID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
