package cancel_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	cancelBooking "github.com/footbook/FB-GroundBookingService/internal/usecase/cancel_booking"
	"github.com/footbook/FB-GroundBookingService/pkg/metrics"
)

const (
	msgInvalidBookingID = "некорректный идентификатор бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "нет прав на отмену этого бронирования"
	msgAlreadyCancelled = "бронирование уже отменено"
	msgPastBooking      = "нельзя отменить прошедшее бронирование"
	msgStoreBusy        = "сервис перегружен, повторите попытку"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	BookingID   string `json:"bookingId"`
	CancelledAt string `json:"cancelledAt"`
	NoRefund    bool   `json:"noRefund"`
	PaidAmount  int64  `json:"paidAmount"`
}

type Handler struct {
	useCase CancelBookingUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	role := cancelBooking.RoleCustomer
	if middleware.UserRole(r.Context()) == middleware.RoleOwner {
		role = cancelBooking.RoleOwner
	}

	req := &cancelBooking.Request{
		BookingID: bookingID,
		ActorID:   userID,
		Role:      role,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%s, user_id=%d",
				bookingID, userID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancel - Access denied: booking_id=%s, user_id=%d, role=%s",
				bookingID, userID, role)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelBooking.ErrAlreadyCancelled):
			h.logger.Warn("POST /bookings/{id}/cancel - Already cancelled: booking_id=%s, user_id=%d",
				bookingID, userID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, cancelBooking.ErrPastBooking):
			h.logger.Warn("POST /bookings/{id}/cancel - Past booking: booking_id=%s, user_id=%d",
				bookingID, userID)
			handlers.RespondUnprocessable(w, msgPastBooking)

		case errors.Is(err, cancelBooking.ErrStoreBusy):
			h.logger.Warn("POST /bookings/{id}/cancel - Store busy: booking_id=%s, user_id=%d",
				bookingID, userID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreBusy)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, user_id=%d: %v",
				bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncBookingCancelled(string(role))
	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%s, user_id=%d, role=%s, no_refund=%t",
		bookingID, userID, role, result.NoRefund)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		BookingID:   result.BookingID.String(),
		CancelledAt: result.CancelledAt.Format(time.RFC3339),
		NoRefund:    result.NoRefund,
		PaidAmount:  result.PaidAmount,
	})
}
