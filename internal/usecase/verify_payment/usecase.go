package verify_payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/razorpay"
	"github.com/footbook/FB-GroundBookingService/internal/usecase/create_booking"
)

// Config параметры оплаты, должны совпадать с создающей заказы стороной
type Config struct {
	AdvanceAmount int64
	Location      *time.Location
}

// UseCase подтверждает онлайн-оплату и закрепляет слот. Все проверки
// закрыты по умолчанию: подпись, принадлежность платежа заказу, статус
// захвата денег, совпадение слота, пользователя и суммы. Только после
// полного совпадения слот передаётся на захват
type UseCase struct {
	gateway      PaymentGateway
	allocator    Allocator
	slotRepo     SlotRepository
	groundRepo   GroundRepository
	activityRepo ActivityLogRepository
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

func New(
	gateway PaymentGateway,
	allocator Allocator,
	slotRepo SlotRepository,
	groundRepo GroundRepository,
	activityRepo ActivityLogRepository,
	cfg Config,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		gateway:      gateway,
		allocator:    allocator,
		slotRepo:     slotRepo,
		groundRepo:   groundRepo,
		activityRepo: activityRepo,
		cfg:          cfg,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if !uc.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		uc.logger.Warn("Execute: invalid signature for order id=%s", req.OrderID)
		return nil, ErrSignatureInvalid
	}

	order, err := uc.gateway.FetchOrder(ctx, req.OrderID)
	if err != nil {
		uc.logger.Error("Execute: failed to fetch order id=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: Execute - failed to fetch order: %v", ErrGatewayFailure, err)
	}

	payment, err := uc.gateway.FetchPayment(ctx, req.PaymentID)
	if err != nil {
		uc.logger.Error("Execute: failed to fetch payment id=%s: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: Execute - failed to fetch payment: %v", ErrGatewayFailure, err)
	}

	if payment.OrderID != order.ID {
		uc.logger.Warn("Execute: payment id=%s belongs to order id=%s, not %s",
			payment.ID, payment.OrderID, order.ID)
		return nil, ErrOrderMismatch
	}

	if !payment.IsCaptured() {
		uc.logger.Warn("Execute: payment id=%s has status=%s", payment.ID, payment.Status)
		return nil, ErrPaymentNotCaptured
	}

	mode, err := uc.checkMetadata(req, order)
	if err != nil {
		return nil, err
	}

	if err := uc.checkAmount(ctx, req.SlotID, mode, order, payment); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	allocReq := &create_booking.Request{
		SlotID:        req.SlotID,
		Source:        domain.SourceOnline,
		UserID:        &req.UserID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Payment: create_booking.PaymentDetails{
			Mode:             mode,
			PaidAmount:       payment.Amount / 100,
			GatewayOrderID:   &order.ID,
			GatewayPaymentID: &payment.ID,
			GatewaySignature: &req.Signature,
			PaidAt:           &now,
		},
	}

	allocResp, err := uc.allocator.Execute(ctx, allocReq)
	if err != nil {
		return nil, uc.mapAllocError(ctx, req, payment, err)
	}

	return &Response{
		BookingID:     allocResp.BookingID,
		SlotID:        allocResp.SlotID,
		GroundID:      allocResp.GroundID,
		GroundName:    allocResp.GroundName,
		Date:          allocResp.Date,
		StartTime:     allocResp.StartTime,
		EndTime:       allocResp.EndTime,
		TotalAmount:   allocResp.TotalAmount,
		PaidAmount:    allocResp.PaidAmount,
		DueAmount:     allocResp.DueAmount,
		PaymentMode:   allocResp.PaymentMode,
		PaymentStatus: allocResp.PaymentStatus,
		CreatedAt:     allocResp.CreatedAt,
	}, nil
}

// checkMetadata сверяет слот, пользователя и режим оплаты, зашитые в
// заказ при его создании, с тем, что прислал клиент
func (uc *UseCase) checkMetadata(req *Request, order *razorpay.Order) (domain.PaymentMode, error) {
	slotID, err := strconv.ParseInt(order.Notes["slot_id"], 10, 64)
	if err != nil || slotID != req.SlotID {
		uc.logger.Warn("checkMetadata: order id=%s was created for slot %q, requested %d",
			order.ID, order.Notes["slot_id"], req.SlotID)
		return "", ErrMetadataMismatch
	}

	userID, err := strconv.ParseInt(order.Notes["user_id"], 10, 64)
	if err != nil || userID != req.UserID {
		uc.logger.Warn("checkMetadata: order id=%s was created by user %q, requested %d",
			order.ID, order.Notes["user_id"], req.UserID)
		return "", ErrMetadataMismatch
	}

	mode := domain.PaymentMode(order.Notes["payment_mode"])
	if mode != domain.PaymentModeFull && mode != domain.PaymentModePartialAdvance {
		return "", ErrMetadataMismatch
	}

	if req.PaymentMode != "" && req.PaymentMode != mode {
		return "", ErrMetadataMismatch
	}

	return mode, nil
}

// checkAmount пересчитывает ожидаемую сумму по текущему тарифу площадки
// и сверяет её и с заказом, и с платежом
func (uc *UseCase) checkAmount(ctx context.Context, slotID int64, mode domain.PaymentMode, order *razorpay.Order, payment *razorpay.Payment) error {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotStorage.ErrSlotNotFound) {
			return ErrSlotNotFound
		}

		uc.logger.Error("checkAmount: failed to get slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: checkAmount - failed to get slot: %v", ErrInternal, err)
	}

	ground, err := uc.groundRepo.GetByID(ctx, slot.GroundID)
	if err != nil {
		uc.logger.Error("checkAmount: failed to get ground id=%d: %v", slot.GroundID, err)
		return fmt.Errorf("%w: checkAmount - failed to get ground: %v", ErrInternal, err)
	}

	total := ground.PriceForHour(slot.StartTime.Hour())

	expected := total
	if mode == domain.PaymentModePartialAdvance && uc.cfg.AdvanceAmount < total {
		expected = uc.cfg.AdvanceAmount
	}

	expectedMinor := expected * 100
	if order.Amount != expectedMinor || payment.Amount != expectedMinor {
		uc.logger.Warn("checkAmount: expected %d, order has %d, payment has %d",
			expectedMinor, order.Amount, payment.Amount)
		return ErrAmountMismatch
	}

	return nil
}

// mapAllocError переводит ошибки захвата слота в ошибки подтверждения.
// Проигранная гонка после оплаты - отдельный случай: деньги уже у шлюза,
// поэтому инцидент фиксируется в журнале для ручного возврата
func (uc *UseCase) mapAllocError(ctx context.Context, req *Request, payment *razorpay.Payment, err error) error {
	switch {
	case errors.Is(err, create_booking.ErrSlotUnavailable):
		uc.appendLostRace(ctx, req, payment)
		return ErrSlotTakenAfterPayment
	case errors.Is(err, create_booking.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, create_booking.ErrSlotExpired):
		return ErrSlotExpired
	case errors.Is(err, create_booking.ErrQuotaExceeded):
		return ErrQuotaExceeded
	case errors.Is(err, create_booking.ErrStoreBusy):
		return ErrStoreBusy
	case errors.Is(err, create_booking.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Error("mapAllocError: failed to allocate slot id=%d: %v", req.SlotID, err)
	return fmt.Errorf("%w: mapAllocError - failed to allocate slot: %v", ErrInternal, err)
}

func (uc *UseCase) appendLostRace(ctx context.Context, req *Request, payment *razorpay.Payment) {
	meta, _ := json.Marshal(map[string]interface{}{
		"reason":       "slot taken after payment",
		"payment_id":   payment.ID,
		"order_id":     payment.OrderID,
		"amount_minor": payment.Amount,
	})
	metaStr := string(meta)

	entry := &domain.ActivityLog{
		UserID:    &req.UserID,
		Action:    domain.ActionAdminAction,
		SlotID:    &req.SlotID,
		Meta:      &metaStr,
		Timestamp: uc.timeProvider.Now(),
	}

	if err := uc.activityRepo.Append(ctx, entry); err != nil {
		uc.logger.Error("appendLostRace: failed to append entry for payment id=%s: %v", payment.ID, err)
	}
}

func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return fmt.Errorf("%w: orderID, paymentID and signature are required", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	return nil
}
