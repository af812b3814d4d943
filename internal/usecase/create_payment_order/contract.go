package create_payment_order

import (
	"context"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/razorpay"
)

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

type BookingRepository interface {
	GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error)
	CountActiveByUserGroundDate(ctx context.Context, userID, groundID int64, date time.Time) (int, error)
}

type GroundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, receipt string, notes map[string]string) (*razorpay.Order, error)
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
