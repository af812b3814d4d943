package verify_payment

import (
	"context"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/razorpay"
	"github.com/footbook/FB-GroundBookingService/internal/usecase/create_booking"
)

type PaymentGateway interface {
	FetchOrder(ctx context.Context, orderID string) (*razorpay.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type Allocator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

type GroundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
}

type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
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
