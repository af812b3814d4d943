package verify_payment

import (
	"errors"
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	verifyPayment "github.com/footbook/FB-GroundBookingService/internal/usecase/verify_payment"
	"github.com/footbook/FB-GroundBookingService/pkg/metrics"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidPaymentData   = "некорректные данные платежа"
	msgSignatureInvalid     = "подпись платежа не подтверждена"
	msgPaymentNotCaptured   = "платёж не подтверждён шлюзом"
	msgPaymentMismatch      = "данные платежа не совпадают с заказом"
	msgSlotNotFound         = "слот не найден"
	msgSlotExpired          = "время слота уже прошло"
	msgQuotaExceeded        = "превышен лимит бронирований на эту дату"
	msgSlotTakenAfterPaid   = "слот занят другим пользователем, оплата передана на ручной возврат"
	msgGatewayFailure       = "платёжный шлюз временно недоступен"
	msgStoreBusy            = "сервис перегружен, повторите попытку"
)

const (
	resultOK       = "ok"
	resultFailed   = "failed"
	resultMismatch = "mismatch"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest(userID,
		middleware.UserName(r.Context()), middleware.UserPhone(r.Context()))

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, &req, userID, err)
		return
	}

	h.metrics.IncPaymentVerified(resultOK)
	h.metrics.IncBookingCreated("online")
	h.logger.Info("POST /payments/verify - Booking confirmed: booking_id=%s, user_id=%d, slot_id=%d, payment_id=%s",
		result.BookingID, userID, req.SlotID, req.PaymentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *VerifyPaymentRequest, userID int64, err error) {
	switch {
	case errors.Is(err, verifyPayment.ErrInvalidInput):
		h.logger.Warn("POST /payments/verify - Invalid payment data: user_id=%d, slot_id=%d: %v",
			userID, req.SlotID, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentData)

	case errors.Is(err, verifyPayment.ErrSignatureInvalid):
		h.metrics.IncPaymentVerified(resultFailed)
		h.logger.Warn("POST /payments/verify - Signature invalid: user_id=%d, order_id=%s, payment_id=%s",
			userID, req.OrderID, req.PaymentID)
		handlers.RespondBadRequest(w, msgSignatureInvalid)

	case errors.Is(err, verifyPayment.ErrPaymentNotCaptured):
		h.metrics.IncPaymentVerified(resultFailed)
		h.logger.Warn("POST /payments/verify - Payment not captured: user_id=%d, payment_id=%s",
			userID, req.PaymentID)
		handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotCaptured)

	case errors.Is(err, verifyPayment.ErrOrderMismatch),
		errors.Is(err, verifyPayment.ErrMetadataMismatch),
		errors.Is(err, verifyPayment.ErrAmountMismatch):
		h.metrics.IncPaymentVerified(resultMismatch)
		h.logger.Warn("POST /payments/verify - Payment cross-check failed: user_id=%d, order_id=%s, payment_id=%s: %v",
			userID, req.OrderID, req.PaymentID, err)
		handlers.RespondUnprocessable(w, msgPaymentMismatch)

	case errors.Is(err, verifyPayment.ErrSlotTakenAfterPayment):
		h.metrics.IncPaymentVerified(resultFailed)
		h.metrics.IncBookingConflict()
		h.logger.Error("POST /payments/verify - Slot taken after payment: user_id=%d, slot_id=%d, payment_id=%s",
			userID, req.SlotID, req.PaymentID)
		handlers.RespondConflict(w, msgSlotTakenAfterPaid)

	case errors.Is(err, verifyPayment.ErrSlotNotFound):
		h.logger.Warn("POST /payments/verify - Slot not found: user_id=%d, slot_id=%d", userID, req.SlotID)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, verifyPayment.ErrSlotExpired):
		h.metrics.IncPaymentVerified(resultFailed)
		h.logger.Warn("POST /payments/verify - Slot expired: user_id=%d, slot_id=%d", userID, req.SlotID)
		handlers.RespondError(w, http.StatusGone, msgSlotExpired)

	case errors.Is(err, verifyPayment.ErrQuotaExceeded):
		h.metrics.IncPaymentVerified(resultFailed)
		h.logger.Warn("POST /payments/verify - Quota exceeded: user_id=%d, slot_id=%d", userID, req.SlotID)
		handlers.RespondUnprocessable(w, msgQuotaExceeded)

	case errors.Is(err, verifyPayment.ErrStoreBusy):
		h.logger.Warn("POST /payments/verify - Store busy: user_id=%d, slot_id=%d", userID, req.SlotID)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreBusy)

	case errors.Is(err, verifyPayment.ErrGatewayFailure):
		h.logger.Error("POST /payments/verify - Gateway failure: user_id=%d, payment_id=%s: %v",
			userID, req.PaymentID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailure)

	default:
		h.logger.Error("POST /payments/verify - Failed to verify payment: user_id=%d, slot_id=%d: %v",
			userID, req.SlotID, err)
		handlers.RespondInternalError(w)
	}
}
