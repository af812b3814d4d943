package reconcile_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
)

// UseCase применяет асинхронные события шлюза к платёжному состоянию
// бронирований. Обработчик идемпотентен: повтор того же события приводит
// к тому же конечному состоянию, новые бронирования здесь никогда не
// создаются
type UseCase struct {
	gateway      PaymentGateway
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

func New(gateway PaymentGateway, bookingRepo BookingRepository, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		gateway:      gateway,
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	if !uc.gateway.VerifyWebhookSignature(req.Payload, req.Signature) {
		uc.logger.Warn("Execute: dropped event with invalid signature")
		return nil, ErrSignatureInvalid
	}

	var event webhookEvent
	if err := json.Unmarshal(req.Payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch event.Event {
	case EventPaymentCaptured:
		payment := event.Payload.Payment.Entity
		if payment.ID == "" {
			return nil, fmt.Errorf("%w: event %s has no payment entity", ErrInvalidPayload, event.Event)
		}

		return uc.reconcile(ctx, event.Event, payment.ID, payment.OrderID)
	case EventOrderPaid:
		order := event.Payload.Order.Entity
		payment := event.Payload.Payment.Entity
		if order.ID == "" && payment.ID == "" {
			return nil, fmt.Errorf("%w: event %s has no order entity", ErrInvalidPayload, event.Event)
		}

		return uc.reconcile(ctx, event.Event, payment.ID, order.ID)
	}

	uc.logger.Debug("Execute: skipped event %s", event.Event)
	return &Result{Event: event.Event, Applied: false}, nil
}

// reconcile находит бронирование по платёжному идентификатору с откатом
// на идентификатор заказа и переводит платёжный статус вперёд. Отметка
// времени оплаты выставляется не более одного раза
func (uc *UseCase) reconcile(ctx context.Context, eventName, paymentID, orderID string) (*Result, error) {
	booking, err := uc.findBooking(ctx, paymentID, orderID)
	if err != nil {
		return nil, err
	}

	status := domain.PaymentPaid
	if booking.DueAmount > 0 {
		status = domain.PaymentPartiallyPaid
	}

	if err := uc.bookingRepo.AdvancePaymentStatus(ctx, booking.ID, status, uc.timeProvider.Now()); err != nil {
		uc.logger.Error("reconcile: failed to advance payment status for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: reconcile - failed to advance payment status: %v", ErrInternal, err)
	}

	uc.logger.Info("reconcile: event %s moved booking id=%s to status=%s",
		eventName, booking.ID, status)

	return &Result{
		Event:         eventName,
		Applied:       true,
		BookingID:     booking.ID,
		PaymentStatus: status,
	}, nil
}

func (uc *UseCase) findBooking(ctx context.Context, paymentID, orderID string) (*domain.Booking, error) {
	if paymentID != "" {
		booking, err := uc.bookingRepo.GetByGatewayPaymentID(ctx, paymentID)
		if err == nil {
			return booking, nil
		}

		if !errors.Is(err, bookingStorage.ErrBookingNotFound) {
			uc.logger.Error("findBooking: failed to look up payment id=%s: %v", paymentID, err)
			return nil, fmt.Errorf("%w: findBooking - failed to look up by payment id: %v", ErrInternal, err)
		}
	}

	if orderID != "" {
		booking, err := uc.bookingRepo.GetByGatewayOrderID(ctx, orderID)
		if err == nil {
			return booking, nil
		}

		if !errors.Is(err, bookingStorage.ErrBookingNotFound) {
			uc.logger.Error("findBooking: failed to look up order id=%s: %v", orderID, err)
			return nil, fmt.Errorf("%w: findBooking - failed to look up by order id: %v", ErrInternal, err)
		}
	}

	return nil, ErrBookingNotFound
}
