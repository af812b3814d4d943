package get_ground_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/internal/service/bookings"
	"github.com/footbook/FB-GroundBookingService/internal/service/bookings/models"
)

const (
	msgInvalidGroundID = "некорректный идентификатор площадки"
	msgInvalidFilter   = "некорректные параметры фильтра"
	msgGroundNotFound  = "площадка не найдена"
	msgAccessDenied    = "бронирования площадки доступны только её владельцу"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds/{id}/bookings?startDate=...&endDate=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	groundID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || groundID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidGroundID)
		return
	}

	req, err := parseFilter(r, userID, groundID)
	if err != nil {
		h.logger.Warn("GET /grounds/{id}/bookings - Invalid filter: ground_id=%d, user_id=%d: %v",
			groundID, userID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetGroundBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrGroundNotFound):
			h.logger.Warn("GET /grounds/{id}/bookings - Ground not found: ground_id=%d", groundID)
			handlers.RespondNotFound(w, msgGroundNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /grounds/{id}/bookings - Access denied: ground_id=%d, user_id=%d", groundID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /grounds/{id}/bookings - Invalid filter: ground_id=%d, user_id=%d: %v",
				groundID, userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /grounds/{id}/bookings - Failed to get bookings: ground_id=%d, user_id=%d: %v",
				groundID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFilter(r *http.Request, userID, groundID int64) (*models.GetGroundBookingsRequest, error) {
	req := &models.GetGroundBookingsRequest{
		UserID:   userID,
		GroundID: groundID,
	}

	q := r.URL.Query()

	if raw := q.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := q.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := q.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
