package manual_booking

import (
	"errors"
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	createBooking "github.com/footbook/FB-GroundBookingService/internal/usecase/create_booking"
	"github.com/footbook/FB-GroundBookingService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgOwnerOnly          = "ручное бронирование доступно только владельцам"
	msgInvalidBookingData = "некорректные данные бронирования"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "выбранный слот уже занят"
	msgSlotExpired        = "время слота уже прошло"
	msgRestrictedHour     = "в эти часы ручное бронирование запрещено"
	msgStoreBusy          = "сервис перегружен, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/manual
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	if middleware.UserRole(r.Context()) != middleware.RoleOwner {
		h.logger.Warn("POST /bookings/manual - Access denied for non-owner: user_id=%d", userID)
		handlers.RespondForbidden(w, msgOwnerOnly)
		return
	}

	var req ManualBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/manual - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/manual - Invalid booking data: owner_id=%d, slot_id=%d: %v",
				userID, req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingData)

		case errors.Is(err, createBooking.ErrSlotNotFound), errors.Is(err, createBooking.ErrGroundNotFound):
			h.logger.Warn("POST /bookings/manual - Slot not found: owner_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.metrics.IncBookingConflict()
			h.logger.Warn("POST /bookings/manual - Slot unavailable: owner_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotExpired):
			h.logger.Warn("POST /bookings/manual - Slot expired: owner_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondError(w, http.StatusGone, msgSlotExpired)

		case errors.Is(err, createBooking.ErrRestrictedHour):
			h.logger.Warn("POST /bookings/manual - Restricted hour: owner_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondUnprocessable(w, msgRestrictedHour)

		case errors.Is(err, createBooking.ErrStoreBusy):
			h.logger.Warn("POST /bookings/manual - Store busy: owner_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreBusy)

		default:
			h.logger.Error("POST /bookings/manual - Failed to create booking: owner_id=%d, slot_id=%d: %v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncBookingCreated("manual")
	h.logger.Info("POST /bookings/manual - Booking created: booking_id=%s, owner_id=%d, slot_id=%d",
		result.BookingID, userID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
