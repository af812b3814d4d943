package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
)

// UseCase лениво материализует часовые слоты площадки. Генерация
// идемпотентна: повторный вызов на ту же дату не создаёт дублей и не
// трогает уже забронированные слоты.
type UseCase struct {
	groundRepo GroundRepository
	slotRepo   SlotRepository
	location   *time.Location
	logger     Logger
}

func New(groundRepo GroundRepository, slotRepo SlotRepository, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		groundRepo: groundRepo,
		slotRepo:   slotRepo,
		location:   location,
		logger:     logger,
	}
}

// EnsureForDate гарантирует наличие всех слотов площадки на дату.
// Возвращает количество реально созданных строк.
func (uc *UseCase) EnsureForDate(ctx context.Context, groundID int64, date time.Time) (int, error) {
	ground, err := uc.groundRepo.GetByID(ctx, groundID)
	if err != nil {
		if errors.Is(err, groundStorage.ErrGroundNotFound) {
			return 0, ErrGroundNotFound
		}

		uc.logger.Error("EnsureForDate: failed to get ground id=%d: %v", groundID, err)
		return 0, fmt.Errorf("%w: EnsureForDate - failed to get ground: %v", ErrInternal, err)
	}

	return uc.ensureForGround(ctx, ground, date)
}

// EnsureWindow прогоняет генерацию на days дней вперёд начиная со startDate.
func (uc *UseCase) EnsureWindow(ctx context.Context, groundID int64, startDate time.Time, days int) (int, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	ground, err := uc.groundRepo.GetByID(ctx, groundID)
	if err != nil {
		if errors.Is(err, groundStorage.ErrGroundNotFound) {
			return 0, ErrGroundNotFound
		}

		uc.logger.Error("EnsureWindow: failed to get ground id=%d: %v", groundID, err)
		return 0, fmt.Errorf("%w: EnsureWindow - failed to get ground: %v", ErrInternal, err)
	}

	total := 0
	for offset := 0; offset < days; offset++ {
		created, err := uc.ensureForGround(ctx, ground, startDate.AddDate(0, 0, offset))
		if err != nil {
			return total, err
		}

		total += created
	}

	return total, nil
}

func (uc *UseCase) ensureForGround(ctx context.Context, ground *domain.Ground, date time.Time) (int, error) {
	slots := buildSlots(ground.ID, ground.SlotRanges(), date, uc.location)

	created := 0
	for _, slot := range slots {
		ok, err := uc.slotRepo.CreateIfAbsent(ctx, slot)
		if err != nil {
			uc.logger.Error("ensureForGround: failed to create slot %s %s for ground id=%d: %v",
				slot.Date.Format(domain.DateFormat), slot.StartTime, ground.ID, err)
			return created, fmt.Errorf("%w: ensureForGround - failed to create slot: %v", ErrInternal, err)
		}

		if ok {
			created++
		}
	}

	if created > 0 {
		uc.logger.Debug("ensureForGround: ground id=%d, date=%s: created %d slots",
			ground.ID, date.Format(domain.DateFormat), created)
	}

	return created, nil
}
