package latest_notification

import (
	"errors"
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/service/activity"
)

const msgNoEvents = "бронирований пока не было"

type Handler struct {
	service ActivityService
	logger  Logger
}

func NewHandler(service ActivityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/latest-event
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LatestBookingEvent(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrNoEvents):
			handlers.RespondNotFound(w, msgNoEvents)

		default:
			h.logger.Error("GET /bookings/latest-event - Failed to get latest event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
