package get_ground_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
)

// UseCase отдаёт расписание площадки на дату. Перед выдачей слоты
// лениво дозаполняются, поэтому клиент всегда видит полную сетку
type UseCase struct {
	groundRepo   GroundRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	generator    SlotGenerator
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func New(
	groundRepo GroundRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	generator SlotGenerator,
	location *time.Location,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		groundRepo:   groundRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		generator:    generator,
		location:     location,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.GroundID <= 0 {
		return nil, fmt.Errorf("%w: groundID must be positive", ErrInvalidInput)
	}

	ground, err := uc.groundRepo.GetByID(ctx, req.GroundID)
	if err != nil {
		if errors.Is(err, groundStorage.ErrGroundNotFound) {
			return nil, ErrGroundNotFound
		}

		uc.logger.Error("Execute: failed to get ground id=%d: %v", req.GroundID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get ground: %v", ErrInternal, err)
	}

	if _, err := uc.generator.EnsureForDate(ctx, ground.ID, req.Date); err != nil {
		uc.logger.Error("Execute: failed to ensure slots for ground id=%d: %v", ground.ID, err)
		return nil, fmt.Errorf("%w: Execute - failed to ensure slots: %v", ErrInternal, err)
	}

	slots, err := uc.slotRepo.GetByGroundAndDate(ctx, ground.ID, req.Date)
	if err != nil {
		uc.logger.Error("Execute: failed to get slots for ground id=%d: %v", ground.ID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get slots: %v", ErrInternal, err)
	}

	views, err := uc.buildViews(ctx, ground, slots, req.UserID)
	if err != nil {
		return nil, err
	}

	return &Response{
		GroundID:   ground.ID,
		GroundName: ground.Name,
		Date:       req.Date,
		Slots:      views,
	}, nil
}

func (uc *UseCase) buildViews(ctx context.Context, ground *domain.Ground, slots []*domain.Slot, userID *int64) ([]SlotView, error) {
	ids := make([]int64, 0, len(slots))
	for _, slot := range slots {
		ids = append(ids, slot.ID)
	}

	bookings, err := uc.bookingRepo.GetActiveBySlotIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("buildViews: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: buildViews - failed to get bookings: %v", ErrInternal, err)
	}

	bySlot := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		bySlot[b.SlotID] = b
	}

	now := uc.timeProvider.Now()

	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		// уже начавшиеся слоты клиенту не показываются
		if slot.IsPast(now, uc.location) {
			continue
		}

		// слоты, созданные при прежнем расписании и выпавшие из
		// текущего окна работы, остаются в базе, но в сетку не попадают
		if !ground.IsWithinOperatingHours(slot.StartTime) {
			continue
		}

		view := SlotView{
			SlotID:    slot.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Price:     ground.PriceForHour(slot.StartTime.Hour()),
			IsBooked:  slot.IsBooked,
		}

		if booking, ok := bySlot[slot.ID]; ok {
			view.IsBooked = true

			if userID != nil && booking.UserID != nil && *booking.UserID == *userID {
				view.IsMine = true
				view.CanCancel = true
				view.NoRefund = slot.HoursUntilStart(now, uc.location) < domain.RefundCutoffHours
			}
		}

		views = append(views, view)
	}

	return views, nil
}
