package create_payment_order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
)

// Config параметры оплаты
type Config struct {
	AdvanceAmount     int64
	MaxBookingsPerDay int
	Location          *time.Location
}

// UseCase создаёт заказ платёжного шлюза под выбранный слот. Проверки
// занятости и лимита здесь предварительные, без блокировок: они
// отсекают заведомо обречённые платежи, но не гарантируют слот.
// Слот закрепляется только после подтверждения оплаты
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	groundRepo   GroundRepository
	gateway      PaymentGateway
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

func New(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	groundRepo GroundRepository,
	gateway PaymentGateway,
	cfg Config,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		groundRepo:   groundRepo,
		gateway:      gateway,
		cfg:          cfg,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = domain.PaymentModeFull
	}

	if mode != domain.PaymentModeFull && mode != domain.PaymentModePartialAdvance {
		return nil, fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, mode)
	}

	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotStorage.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}

		uc.logger.Error("Execute: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get slot: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if slot.IsPast(now, uc.cfg.Location) {
		return nil, ErrSlotExpired
	}

	if slot.IsBooked {
		return nil, ErrSlotUnavailable
	}

	if _, err := uc.bookingRepo.GetActiveBySlotID(ctx, slot.ID); err == nil {
		return nil, ErrSlotUnavailable
	} else if !errors.Is(err, bookingStorage.ErrBookingNotFound) {
		uc.logger.Error("Execute: failed to check slot id=%d occupancy: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: Execute - failed to check occupancy: %v", ErrInternal, err)
	}

	ground, err := uc.groundRepo.GetByID(ctx, slot.GroundID)
	if err != nil {
		if errors.Is(err, groundStorage.ErrGroundNotFound) {
			return nil, fmt.Errorf("%w: Execute - slot ground not found", ErrInternal)
		}

		uc.logger.Error("Execute: failed to get ground id=%d: %v", slot.GroundID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get ground: %v", ErrInternal, err)
	}

	count, err := uc.bookingRepo.CountActiveByUserGroundDate(ctx, req.UserID, ground.ID, slot.Date)
	if err != nil {
		uc.logger.Error("Execute: failed to count bookings for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Execute - failed to count bookings: %v", ErrInternal, err)
	}

	if count >= uc.cfg.MaxBookingsPerDay {
		return nil, ErrQuotaExceeded
	}

	total := ground.PriceForHour(slot.StartTime.Hour())

	// аванс не меньше полной стоимости не имеет смысла, переходим на
	// полную оплату
	payNow := total
	if mode == domain.PaymentModePartialAdvance {
		if uc.cfg.AdvanceAmount < total {
			payNow = uc.cfg.AdvanceAmount
		} else {
			mode = domain.PaymentModeFull
		}
	}

	notes := map[string]string{
		"slot_id":      strconv.FormatInt(slot.ID, 10),
		"user_id":      strconv.FormatInt(req.UserID, 10),
		"payment_mode": string(mode),
	}

	order, err := uc.gateway.CreateOrder(ctx, payNow*100, fmt.Sprintf("slot-%d", slot.ID), notes)
	if err != nil {
		uc.logger.Error("Execute: failed to create order for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: Execute - failed to create order: %v", ErrGatewayFailure, err)
	}

	uc.logger.Info("Execute: created order id=%s for slot id=%d, mode=%s, payNow=%d",
		order.ID, slot.ID, mode, payNow)

	return &Response{
		OrderID:          order.ID,
		Currency:         order.Currency,
		AmountMinorUnits: order.Amount,
		PayNow:           payNow,
		Due:              total - payNow,
		Total:            total,
		PaymentMode:      mode,
	}, nil
}
