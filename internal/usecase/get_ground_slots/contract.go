package get_ground_slots

import (
	"context"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

type GroundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
}

type SlotRepository interface {
	GetByGroundAndDate(ctx context.Context, groundID int64, date time.Time) ([]*domain.Slot, error)
}

type BookingRepository interface {
	GetActiveBySlotIDs(ctx context.Context, slotIDs []int64) ([]*domain.Booking, error)
}

// SlotGenerator лениво дозаполняет слоты перед выдачей
type SlotGenerator interface {
	EnsureForDate(ctx context.Context, groundID int64, date time.Time) (int, error)
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
