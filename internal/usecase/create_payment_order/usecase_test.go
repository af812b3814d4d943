package create_payment_order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/razorpay"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type fakeSlotRepo struct{ slots map[int64]*domain.Slot }

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

type fakeBookingRepo struct {
	slots    map[int64]*domain.Slot
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.SlotID == slotID && b.IsActive() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (f *fakeBookingRepo) CountActiveByUserGroundDate(ctx context.Context, userID, groundID int64, date time.Time) (int, error) {
	count := 0
	for _, b := range f.bookings {
		if b.UserID == nil || *b.UserID != userID || !b.IsActive() {
			continue
		}
		slot := f.slots[b.SlotID]
		if slot != nil && slot.GroundID == groundID && slot.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

type fakeGroundRepo struct{ grounds map[int64]*domain.Ground }

func (f *fakeGroundRepo) GetByID(ctx context.Context, id int64) (*domain.Ground, error) {
	g, ok := f.grounds[id]
	if !ok {
		return nil, groundStorage.ErrGroundNotFound
	}
	copied := *g
	return &copied, nil
}

type fakeGateway struct {
	lastAmount  int64
	lastReceipt string
	lastNotes   map[string]string
	err         error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, receipt string, notes map[string]string) (*razorpay.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amountMinorUnits
	f.lastReceipt = receipt
	f.lastNotes = notes
	return &razorpay.Order{
		ID:       "order_T1",
		Amount:   amountMinorUnits,
		Currency: "INR",
		Status:   "created",
		Receipt:  receipt,
		Notes:    notes,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc       *UseCase
	slots    *fakeSlotRepo
	bookings *fakeBookingRepo
	gateway  *fakeGateway
}

// Стенд: сейчас 2026-02-19 10:00 UTC, свободный ночной слот (800)
// на 2026-02-20 18:00
func newFixture(t *testing.T) *fixture {
	t.Helper()

	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		100: {
			ID:        100,
			GroundID:  1,
			Date:      time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("18:00"),
			EndTime:   types.MustTimeString("19:00"),
		},
	}}
	bookings := &fakeBookingRepo{slots: slots.slots}
	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{
		1: {ID: 1, OwnerID: 10, Name: "Arena One", DayPrice: 500, NightPrice: 800},
	}}
	gateway := &fakeGateway{}

	uc := New(
		slots,
		bookings,
		grounds,
		gateway,
		Config{AdvanceAmount: 99, MaxBookingsPerDay: 5, Location: time.UTC},
		fixedClock{now: time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	return &fixture{uc: uc, slots: slots, bookings: bookings, gateway: gateway}
}

func TestExecuteFullPayment(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		SlotID:      100,
		UserID:      7,
		PaymentMode: domain.PaymentModeFull,
	})
	require.NoError(t, err)

	assert.Equal(t, "order_T1", resp.OrderID)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, int64(800), resp.PayNow)
	assert.Equal(t, int64(0), resp.Due)
	assert.Equal(t, int64(800), resp.Total)
	assert.Equal(t, domain.PaymentModeFull, resp.PaymentMode)
	assert.Equal(t, int64(80000), resp.AmountMinorUnits)

	assert.Equal(t, int64(80000), f.gateway.lastAmount)
	assert.Equal(t, "slot-100", f.gateway.lastReceipt)
	assert.Equal(t, map[string]string{
		"slot_id":      "100",
		"user_id":      "7",
		"payment_mode": "FULL",
	}, f.gateway.lastNotes)
}

func TestExecutePartialAdvance(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		SlotID:      100,
		UserID:      7,
		PaymentMode: domain.PaymentModePartialAdvance,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(99), resp.PayNow)
	assert.Equal(t, int64(701), resp.Due)
	assert.Equal(t, int64(800), resp.Total)
	assert.Equal(t, domain.PaymentModePartialAdvance, resp.PaymentMode)
	assert.Equal(t, int64(9900), f.gateway.lastAmount)
	assert.Equal(t, "PARTIAL_ADVANCE", f.gateway.lastNotes["payment_mode"])
}

func TestExecutePartialAdvanceDegradesToFull(t *testing.T) {
	f := newFixture(t)
	f.uc.cfg.AdvanceAmount = 800

	resp, err := f.uc.Execute(context.Background(), &Request{
		SlotID:      100,
		UserID:      7,
		PaymentMode: domain.PaymentModePartialAdvance,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentModeFull, resp.PaymentMode)
	assert.Equal(t, int64(800), resp.PayNow)
	assert.Equal(t, int64(0), resp.Due)
	assert.Equal(t, "FULL", f.gateway.lastNotes["payment_mode"])
}

func TestExecuteEmptyModeDefaultsToFull(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentModeFull, resp.PaymentMode)
	assert.Equal(t, int64(800), resp.PayNow)
}

func TestExecuteBookedSlot(t *testing.T) {
	f := newFixture(t)
	f.slots.slots[100].IsBooked = true

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecuteStaleSlotFlagStillConflicts(t *testing.T) {
	f := newFixture(t)

	// флаг занятости не выставлен, но активное бронирование уже есть
	userID := int64(9)
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:     uuid.New(),
		SlotID: 100,
		UserID: &userID,
		Status: domain.StatusBooked,
	})

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecuteExpiredSlot(t *testing.T) {
	f := newFixture(t)
	f.slots.slots[100].Date = time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7})
	assert.ErrorIs(t, err, ErrSlotExpired)
}

func TestExecuteQuotaExceeded(t *testing.T) {
	f := newFixture(t)

	userID := int64(7)
	date := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		slotID := int64(200 + i)
		f.slots.slots[slotID] = &domain.Slot{
			ID:        slotID,
			GroundID:  1,
			Date:      date,
			StartTime: types.MustTimeString("06:00"),
			EndTime:   types.MustTimeString("07:00"),
			IsBooked:  true,
		}
		f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
			ID:     uuid.New(),
			SlotID: slotID,
			UserID: &userID,
			Status: domain.StatusBooked,
		})
	}

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestExecuteGatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7})
	assert.ErrorIs(t, err, ErrGatewayFailure)
}

func TestExecuteSlotNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 404, UserID: 7})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: 0, UserID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{SlotID: 100, UserID: 7, PaymentMode: "CRYPTO"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
