package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
}

type GroundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
}

type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Notify(ctx context.Context, route, recipient, subject, body string)
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
