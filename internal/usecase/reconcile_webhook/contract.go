package reconcile_webhook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

type PaymentGateway interface {
	VerifyWebhookSignature(payload []byte, signature string) bool
}

type BookingRepository interface {
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Booking, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	AdvancePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt time.Time) error
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type TimeProvider interface {
	Now() time.Time
}
