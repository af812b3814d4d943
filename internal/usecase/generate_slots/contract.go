package generate_slots

import (
	"context"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

type GroundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
}

type SlotRepository interface {
	CreateIfAbsent(ctx context.Context, slot *domain.Slot) (bool, error)
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
