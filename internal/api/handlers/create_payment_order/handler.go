package create_payment_order

import (
	"errors"
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	createPaymentOrder "github.com/footbook/FB-GroundBookingService/internal/usecase/create_payment_order"
	"github.com/footbook/FB-GroundBookingService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOrderData   = "некорректные параметры заказа"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgSlotExpired        = "время слота уже прошло"
	msgQuotaExceeded      = "превышен лимит бронирований на эту дату"
	msgGatewayFailure     = "платёжный шлюз временно недоступен"
)

type Handler struct {
	useCase CreatePaymentOrderUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase CreatePaymentOrderUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createPaymentOrder.ErrInvalidInput):
			h.logger.Warn("POST /payments/orders - Invalid order data: user_id=%d, slot_id=%d: %v",
				userID, req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidOrderData)

		case errors.Is(err, createPaymentOrder.ErrSlotNotFound):
			h.logger.Warn("POST /payments/orders - Slot not found: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createPaymentOrder.ErrSlotUnavailable):
			h.logger.Warn("POST /payments/orders - Slot unavailable: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createPaymentOrder.ErrSlotExpired):
			h.logger.Warn("POST /payments/orders - Slot expired: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondError(w, http.StatusGone, msgSlotExpired)

		case errors.Is(err, createPaymentOrder.ErrQuotaExceeded):
			h.logger.Warn("POST /payments/orders - Quota exceeded: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondUnprocessable(w, msgQuotaExceeded)

		case errors.Is(err, createPaymentOrder.ErrGatewayFailure):
			h.logger.Error("POST /payments/orders - Gateway failure: user_id=%d, slot_id=%d: %v",
				userID, req.SlotID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailure)

		default:
			h.logger.Error("POST /payments/orders - Failed to create order: user_id=%d, slot_id=%d: %v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncPaymentOrder()
	h.logger.Info("POST /payments/orders - Order created: order_id=%s, user_id=%d, slot_id=%d, pay_now=%d",
		result.OrderID, userID, req.SlotID, result.PayNow)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
