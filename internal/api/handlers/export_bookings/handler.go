package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/internal/service/reports"
)

const (
	msgInvalidGroundID = "некорректный идентификатор площадки"
	msgInvalidPeriod   = "некорректный формат периода, ожидается YYYY-MM-DD"
	msgGroundNotFound  = "площадка не найдена"
	msgAccessDenied    = "выгрузка доступна только владельцу площадки"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds/{id}/bookings/export?startDate=...&endDate=...
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

	req := &reports.ExportRequest{
		GroundID: groundID,
		UserID:   userID,
	}

	q := r.URL.Query()
	if raw := q.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.StartDate = &startDate
	}
	if raw := q.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.EndDate = &endDate
	}

	csvData, err := h.service.ExportGroundBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrGroundNotFound):
			h.logger.Warn("GET /grounds/{id}/bookings/export - Ground not found: ground_id=%d", groundID)
			handlers.RespondNotFound(w, msgGroundNotFound)

		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET /grounds/{id}/bookings/export - Access denied: ground_id=%d, user_id=%d",
				groundID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /grounds/{id}/bookings/export - Failed to export bookings: ground_id=%d, user_id=%d: %v",
				groundID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /grounds/{id}/bookings/export - Export completed: ground_id=%d, user_id=%d, bytes=%d",
		groundID, userID, len(csvData))

	filename := fmt.Sprintf("bookings-%d-%s.csv", groundID, time.Now().Format(domain.DateFormat))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(csvData); err != nil {
		h.logger.Warn("GET /grounds/{id}/bookings/export - Failed to write response: %v", err)
	}
}
