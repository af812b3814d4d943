package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/notifier"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

// UseCase отменяет активное бронирование и освобождает слот.
// Клиент может отменить только своё онлайн-бронирование, владелец -
// любое бронирование на своей площадке. Отмена менее чем за четыре
// часа до начала слота проходит, но помечается как невозвратная
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	groundRepo   GroundRepository
	activityRepo ActivityLogRepository
	txManager    TransactionManager
	notifier     Notifier
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func New(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	groundRepo GroundRepository,
	activityRepo ActivityLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	location *time.Location,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		groundRepo:   groundRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		notifier:     notifier,
		location:     location,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Role != RoleCustomer && req.Role != RoleOwner {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	now := uc.timeProvider.Now()

	var (
		booking *domain.Booking
		slot    *domain.Slot
		ground  *domain.Ground
		resp    *Response
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error
		booking, slot, ground, resp, txErr = uc.cancel(txCtx, req, now)
		return txErr
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBusy) {
			return nil, ErrStoreBusy
		}

		return nil, err
	}

	uc.logger.Info("Execute: cancelled booking id=%s by %s, refundable=%t",
		booking.ID, req.Role, !resp.NoRefund)

	uc.notifyCancellation(ctx, req, booking, slot, ground)

	return resp, nil
}

func (uc *UseCase) cancel(ctx context.Context, req *Request, now time.Time) (*domain.Booking, *domain.Slot, *domain.Ground, *Response, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingStorage.ErrBookingNotFound) {
			return nil, nil, nil, nil, ErrBookingNotFound
		}

		uc.logger.Error("cancel: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, nil, nil, nil, fmt.Errorf("%w: cancel - failed to get booking: %v", ErrInternal, err)
	}

	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, slotStorage.ErrSlotNotFound) {
			uc.logger.Error("cancel: slot id=%d of booking id=%s not found", booking.SlotID, booking.ID)
			return nil, nil, nil, nil, fmt.Errorf("%w: cancel - booking slot not found", ErrInternal)
		}

		uc.logger.Error("cancel: failed to get slot id=%d: %v", booking.SlotID, err)
		return nil, nil, nil, nil, fmt.Errorf("%w: cancel - failed to get slot: %v", ErrInternal, err)
	}

	ground, err := uc.groundRepo.GetByID(ctx, slot.GroundID)
	if err != nil {
		if errors.Is(err, groundStorage.ErrGroundNotFound) {
			return nil, nil, nil, nil, fmt.Errorf("%w: cancel - slot ground not found", ErrInternal)
		}

		uc.logger.Error("cancel: failed to get ground id=%d: %v", slot.GroundID, err)
		return nil, nil, nil, nil, fmt.Errorf("%w: cancel - failed to get ground: %v", ErrInternal, err)
	}

	noRefund, err := uc.checkPolicy(req, booking, slot, ground, now)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if !booking.IsActive() {
		return nil, nil, nil, nil, ErrAlreadyCancelled
	}

	if err := uc.bookingRepo.Cancel(ctx, booking.ID, now); err != nil {
		if errors.Is(err, bookingStorage.ErrBookingNotFound) {
			// статус сменился между чтением и обновлением
			return nil, nil, nil, nil, ErrAlreadyCancelled
		}

		uc.logger.Error("cancel: failed to cancel booking id=%s: %v", booking.ID, err)
		return nil, nil, nil, nil, fmt.Errorf("%w: cancel - failed to cancel booking: %v", ErrInternal, err)
	}

	if err := uc.slotRepo.SetBooked(ctx, slot.ID, false); err != nil {
		uc.logger.Error("cancel: failed to release slot id=%d: %v", slot.ID, err)
		return nil, nil, nil, nil, fmt.Errorf("%w: cancel - failed to release slot: %v", ErrInternal, err)
	}

	if err := uc.appendActivity(ctx, req, booking, slot, noRefund, now); err != nil {
		return nil, nil, nil, nil, err
	}

	return booking, slot, ground, &Response{
		BookingID:   booking.ID,
		CancelledAt: now,
		NoRefund:    noRefund,
		PaidAmount:  booking.PaidAmount,
	}, nil
}

// checkPolicy права доступа и временные ограничения отмены.
// Для клиента прошедшим считается слот на вчерашнюю и более ранние даты,
// для владельца - слот, который уже начался
func (uc *UseCase) checkPolicy(req *Request, booking *domain.Booking, slot *domain.Slot, ground *domain.Ground, now time.Time) (bool, error) {
	switch req.Role {
	case RoleCustomer:
		// ручные бронирования клиенту не видны, UserID у них пуст
		if booking.UserID == nil || *booking.UserID != req.ActorID {
			return false, ErrAccessDenied
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.location)
		if slot.Date.Before(today) {
			return false, ErrPastBooking
		}

		return slot.HoursUntilStart(now, uc.location) < domain.RefundCutoffHours, nil
	case RoleOwner:
		if ground.OwnerID != req.ActorID {
			return false, ErrAccessDenied
		}

		if !slot.StartInstant(uc.location).After(now) {
			return false, ErrPastBooking
		}

		return false, nil
	}

	return false, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
}

func (uc *UseCase) appendActivity(ctx context.Context, req *Request, booking *domain.Booking, slot *domain.Slot, noRefund bool, now time.Time) error {
	action := domain.ActionCustomerCancelled
	if req.Role == RoleOwner {
		action = domain.ActionOwnerCancelled
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"no_refund":   noRefund,
		"paid_amount": booking.PaidAmount,
	})
	metaStr := string(meta)

	entry := &domain.ActivityLog{
		UserID:    &req.ActorID,
		Action:    action,
		BookingID: &booking.ID,
		SlotID:    &slot.ID,
		Meta:      &metaStr,
		Timestamp: now,
	}

	if err := uc.activityRepo.Append(ctx, entry); err != nil {
		uc.logger.Error("appendActivity: failed to append entry for booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: appendActivity - failed to append entry: %v", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) notifyCancellation(ctx context.Context, req *Request, booking *domain.Booking, slot *domain.Slot, ground *domain.Ground) {
	recipient := fmt.Sprintf("owner:%d", ground.OwnerID)
	if req.Role == RoleOwner && booking.UserID != nil {
		recipient = fmt.Sprintf("user:%d", *booking.UserID)
	}

	subject := fmt.Sprintf("Отмена бронирования: %s", ground.Name)
	body := fmt.Sprintf("Слот %s %s-%s освобождён",
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime)

	uc.notifier.Notify(ctx, notifier.RouteBookingCancelled, recipient, subject, body)
}
