package grounds

import (
	"context"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

// GroundRepository интерфейс репозитория площадок
type GroundRepository interface {
	Create(ctx context.Context, g *domain.Ground) (*domain.Ground, error)
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
	List(ctx context.Context) ([]*domain.Ground, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Ground, error)
}

// SlotGenerator предзаполняет сетку слотов новой площадки
type SlotGenerator interface {
	EnsureWindow(ctx context.Context, groundID int64, startDate time.Time, days int) (int, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
