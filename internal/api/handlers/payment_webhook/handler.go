package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	reconcileWebhook "github.com/footbook/FB-GroundBookingService/internal/usecase/reconcile_webhook"
	"github.com/footbook/FB-GroundBookingService/pkg/metrics"
)

// HeaderSignature подпись тела события, проставляется шлюзом
const HeaderSignature = "X-Razorpay-Signature"

const (
	msgInvalidSignature = "подпись события не подтверждена"
	msgInvalidPayload   = "некорректное тело события"
	msgBookingNotFound  = "бронирование для события не найдено"
)

// maxPayloadBytes ограничивает размер тела события
const maxPayloadBytes = 1 << 20

type webhookResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	useCase ReconcileWebhookUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase ReconcileWebhookUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
//
// Для несопоставленных событий возвращается 404: шлюз повторит доставку,
// к этому моменту бронирование обычно уже создано через верификацию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	req := &reconcileWebhook.Request{
		Payload:   payload,
		Signature: r.Header.Get(HeaderSignature),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reconcileWebhook.ErrSignatureInvalid):
			h.metrics.IncWebhookEvent("rejected")
			h.logger.Warn("POST /payments/webhook - Signature invalid")
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, reconcileWebhook.ErrInvalidPayload):
			h.metrics.IncWebhookEvent("rejected")
			h.logger.Warn("POST /payments/webhook - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, reconcileWebhook.ErrBookingNotFound):
			h.metrics.IncWebhookEvent("ignored")
			h.logger.Warn("POST /payments/webhook - Booking not found for event: %v", err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /payments/webhook - Failed to process event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Applied {
		h.metrics.IncWebhookEvent("ignored")
		h.logger.Info("POST /payments/webhook - Event ignored: event=%s", result.Event)
		handlers.RespondJSON(w, http.StatusOK, webhookResponse{Status: "ignored"})
		return
	}

	h.metrics.IncWebhookEvent("applied")
	h.logger.Info("POST /payments/webhook - Event applied: event=%s, booking_id=%s, payment_status=%s",
		result.Event, result.BookingID, result.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, webhookResponse{Status: "ok"})
}
