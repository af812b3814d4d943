package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/notifier"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

// Config параметры бронирования, приходят из конфигурации сервиса
type Config struct {
	PlatformFee         int64
	MaxBookingsPerDay   int
	RestrictedStartHour int
	RestrictedEndHour   int
	Location            *time.Location
}

// UseCase захватывает слот под бронирование. Вся проверка и запись
// выполняются в одной сериализуемой транзакции: слот блокируется,
// занятость перепроверяется под блокировкой, и только после этого
// создаётся бронирование. Частичный уникальный индекс активных
// бронирований страхует от гонки на уровне хранилища
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	groundRepo   GroundRepository
	activityRepo ActivityLogRepository
	txManager    TransactionManager
	notifier     Notifier
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

func New(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	groundRepo GroundRepository,
	activityRepo ActivityLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	cfg Config,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		groundRepo:   groundRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		notifier:     notifier,
		cfg:          cfg,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		booking *domain.Booking
		slot    *domain.Slot
		ground  *domain.Ground
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error
		booking, slot, ground, txErr = uc.allocate(txCtx, req, now)
		return txErr
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBusy) {
			uc.logger.Warn("Execute: slot id=%d: transaction failed after retries", req.SlotID)
			return nil, ErrStoreBusy
		}

		return nil, err
	}

	uc.logger.Info("Execute: created booking id=%s, slot id=%d, source=%s",
		booking.ID, slot.ID, booking.Source)

	uc.notifyOwner(ctx, booking, slot, ground)

	return &Response{
		BookingID:     booking.ID,
		SlotID:        slot.ID,
		GroundID:      ground.ID,
		GroundName:    ground.Name,
		Date:          slot.Date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		TotalAmount:   booking.TotalAmount,
		PlatformFee:   booking.PlatformFee,
		OwnerPayout:   booking.OwnerPayout,
		PaidAmount:    booking.PaidAmount,
		DueAmount:     booking.DueAmount,
		PaymentMode:   booking.PaymentMode,
		PaymentStatus: booking.PaymentStatus,
		Source:        booking.Source,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// allocate выполняется внутри транзакции. Порядок проверок фиксирован:
// истёкший слот отклоняется до проверки занятости, чтобы просроченный
// занятый слот не маскировался под конфликт
func (uc *UseCase) allocate(ctx context.Context, req *Request, now time.Time) (*domain.Booking, *domain.Slot, *domain.Ground, error) {
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotStorage.ErrSlotNotFound) {
			return nil, nil, nil, ErrSlotNotFound
		}

		uc.logger.Error("allocate: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, nil, nil, fmt.Errorf("%w: allocate - failed to get slot: %v", ErrInternal, err)
	}

	if slot.IsPast(now, uc.cfg.Location) {
		return nil, nil, nil, ErrSlotExpired
	}

	if slot.IsBooked {
		return nil, nil, nil, ErrSlotUnavailable
	}

	// повторная проверка под блокировкой: флаг на слоте мог отстать
	// от таблицы бронирований
	if _, err := uc.bookingRepo.GetActiveBySlotID(ctx, slot.ID); err == nil {
		return nil, nil, nil, ErrSlotUnavailable
	} else if !errors.Is(err, bookingStorage.ErrBookingNotFound) {
		uc.logger.Error("allocate: failed to re-check slot id=%d occupancy: %v", slot.ID, err)
		return nil, nil, nil, fmt.Errorf("%w: allocate - failed to re-check occupancy: %v", ErrInternal, err)
	}

	ground, err := uc.groundRepo.GetByID(ctx, slot.GroundID)
	if err != nil {
		if errors.Is(err, groundStorage.ErrGroundNotFound) {
			return nil, nil, nil, ErrGroundNotFound
		}

		uc.logger.Error("allocate: failed to get ground id=%d: %v", slot.GroundID, err)
		return nil, nil, nil, fmt.Errorf("%w: allocate - failed to get ground: %v", ErrInternal, err)
	}

	if err := uc.checkPolicy(ctx, req, slot, ground); err != nil {
		return nil, nil, nil, err
	}

	booking, err := uc.buildBooking(req, slot, ground, now)
	if err != nil {
		return nil, nil, nil, err
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingStorage.ErrSlotTaken) {
			return nil, nil, nil, ErrSlotUnavailable
		}

		uc.logger.Error("allocate: failed to create booking for slot id=%d: %v", slot.ID, err)
		return nil, nil, nil, fmt.Errorf("%w: allocate - failed to create booking: %v", ErrInternal, err)
	}

	if err := uc.slotRepo.SetBooked(ctx, slot.ID, true); err != nil {
		uc.logger.Error("allocate: failed to mark slot id=%d booked: %v", slot.ID, err)
		return nil, nil, nil, fmt.Errorf("%w: allocate - failed to mark slot booked: %v", ErrInternal, err)
	}

	if err := uc.appendActivity(ctx, req, created, slot); err != nil {
		return nil, nil, nil, err
	}

	return created, slot, ground, nil
}

// checkPolicy проверки, зависящие от источника бронирования
func (uc *UseCase) checkPolicy(ctx context.Context, req *Request, slot *domain.Slot, ground *domain.Ground) error {
	if req.Source == domain.SourceManual {
		if ground.OwnerID != *req.OwnerID {
			return fmt.Errorf("%w: ground belongs to another owner", ErrInvalidInput)
		}

		hour := slot.StartTime.Hour()
		if hour >= uc.cfg.RestrictedStartHour && hour < uc.cfg.RestrictedEndHour {
			return ErrRestrictedHour
		}

		return nil
	}

	count, err := uc.bookingRepo.CountActiveByUserGroundDate(ctx, *req.UserID, ground.ID, slot.Date)
	if err != nil {
		uc.logger.Error("checkPolicy: failed to count bookings for user id=%d: %v", *req.UserID, err)
		return fmt.Errorf("%w: checkPolicy - failed to count bookings: %v", ErrInternal, err)
	}

	if count >= uc.cfg.MaxBookingsPerDay {
		return ErrQuotaExceeded
	}

	return nil
}

func (uc *UseCase) buildBooking(req *Request, slot *domain.Slot, ground *domain.Ground, now time.Time) (*domain.Booking, error) {
	total := ground.PriceForHour(slot.StartTime.Hour())

	booking := &domain.Booking{
		ID:            uuid.New(),
		SlotID:        slot.ID,
		UserID:        req.UserID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DurationHours: domain.SlotDurationHours,
		TotalAmount:   total,
		PlatformFee:   uc.cfg.PlatformFee,
		OwnerPayout:   total - uc.cfg.PlatformFee,
		Source:        req.Source,
		Status:        domain.StatusBooked,
		CreatedAt:     now,
	}

	if req.Source == domain.SourceManual {
		booking.PaymentMode = domain.PaymentModeFull
		booking.PaymentStatus = domain.PaymentPaid
		booking.PaidAmount = total
		booking.DueAmount = 0
		paidAt := now
		booking.PaymentPaidAt = &paidAt

		return booking, nil
	}

	if req.Payment.PaidAmount > total {
		return nil, fmt.Errorf("%w: paid amount %d exceeds total %d", ErrInvalidInput, req.Payment.PaidAmount, total)
	}

	booking.PaymentMode = req.Payment.Mode
	booking.PaidAmount = req.Payment.PaidAmount
	booking.DueAmount = total - req.Payment.PaidAmount
	booking.GatewayOrderID = req.Payment.GatewayOrderID
	booking.GatewayPaymentID = req.Payment.GatewayPaymentID
	booking.GatewaySignature = req.Payment.GatewaySignature
	booking.PaymentPaidAt = req.Payment.PaidAt

	if booking.DueAmount == 0 {
		booking.PaymentStatus = domain.PaymentPaid
	} else {
		booking.PaymentStatus = domain.PaymentPartiallyPaid
	}

	return booking, nil
}

func (uc *UseCase) appendActivity(ctx context.Context, req *Request, booking *domain.Booking, slot *domain.Slot) error {
	action := domain.ActionBooked
	actor := req.UserID
	if req.Source == domain.SourceManual {
		action = domain.ActionManualBooking
		actor = req.OwnerID
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"customer_name": booking.CustomerName,
		"total_amount":  booking.TotalAmount,
		"paid_amount":   booking.PaidAmount,
	})
	metaStr := string(meta)

	entry := &domain.ActivityLog{
		UserID:    actor,
		Action:    action,
		BookingID: &booking.ID,
		SlotID:    &slot.ID,
		Meta:      &metaStr,
		Timestamp: booking.CreatedAt,
	}

	if err := uc.activityRepo.Append(ctx, entry); err != nil {
		uc.logger.Error("appendActivity: failed to append entry for booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: appendActivity - failed to append entry: %v", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) notifyOwner(ctx context.Context, booking *domain.Booking, slot *domain.Slot, ground *domain.Ground) {
	subject := fmt.Sprintf("Новое бронирование: %s", ground.Name)
	body := fmt.Sprintf("Слот %s %s-%s забронирован (%s), к выплате %d",
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime, booking.CustomerName, booking.OwnerPayout)

	uc.notifier.Notify(ctx, notifier.RouteBookingCreated, fmt.Sprintf("owner:%d", ground.OwnerID), subject, body)
}
