package reconcile_webhook

import (
	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

// Поддерживаемые типы событий шлюза
const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
)

type Request struct {
	Payload   []byte
	Signature string
}

// Result исход обработки события. Applied false означает, что событие
// корректно, но не относится к отслеживаемым типам
type Result struct {
	Event         string
	Applied       bool
	BookingID     uuid.UUID
	PaymentStatus domain.PaymentStatus
}

// webhookEvent формат событий Razorpay: полезная нагрузка вложена по
// пути payload.<entity>.entity
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity webhookPayment `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity webhookOrder `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type webhookPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
}

type webhookOrder struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}
