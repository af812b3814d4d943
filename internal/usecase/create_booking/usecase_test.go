package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

// fakeStore in-memory хранилище с той же семантикой, что и настоящее:
// общий mutex играет роль сериализуемой транзакции, Create повторяет
// частичный уникальный индекс активных бронирований
type fakeStore struct {
	mu       sync.Mutex
	slots    map[int64]*domain.Slot
	grounds  map[int64]*domain.Ground
	bookings map[uuid.UUID]*domain.Booking
	activity []*domain.ActivityLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[int64]*domain.Slot),
		grounds:  make(map[int64]*domain.Ground),
		bookings: make(map[uuid.UUID]*domain.Booking),
	}
}

func (s *fakeStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type fakeSlotRepo struct{ store *fakeStore }

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.store.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) SetBooked(ctx context.Context, id int64, booked bool) error {
	slot, ok := f.store.slots[id]
	if !ok {
		return slotStorage.ErrSlotNotFound
	}
	slot.IsBooked = booked
	return nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	for _, existing := range f.store.bookings {
		if existing.SlotID == b.SlotID && existing.IsActive() {
			return nil, bookingStorage.ErrSlotTaken
		}
	}
	copied := *b
	f.store.bookings[b.ID] = &copied
	return &copied, nil
}

func (f *fakeBookingRepo) GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error) {
	for _, b := range f.store.bookings {
		if b.SlotID == slotID && b.IsActive() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (f *fakeBookingRepo) CountActiveByUserGroundDate(ctx context.Context, userID, groundID int64, date time.Time) (int, error) {
	count := 0
	for _, b := range f.store.bookings {
		if b.UserID == nil || *b.UserID != userID || !b.IsActive() {
			continue
		}
		slot := f.store.slots[b.SlotID]
		if slot != nil && slot.GroundID == groundID && slot.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

type fakeGroundRepo struct{ store *fakeStore }

func (f *fakeGroundRepo) GetByID(ctx context.Context, id int64) (*domain.Ground, error) {
	g, ok := f.store.grounds[id]
	if !ok {
		return nil, groundStorage.ErrGroundNotFound
	}
	copied := *g
	return &copied, nil
}

type fakeActivityRepo struct{ store *fakeStore }

func (f *fakeActivityRepo) Append(ctx context.Context, entry *domain.ActivityLog) error {
	f.store.activity = append(f.store.activity, entry)
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(ctx context.Context, route, recipient, subject, body string) {}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func defaultConfig() Config {
	return Config{
		PlatformFee:         3,
		MaxBookingsPerDay:   5,
		RestrictedStartHour: 2,
		RestrictedEndHour:   6,
		Location:            time.UTC,
	}
}

// Стенд: сейчас 2026-02-19 10:00 UTC, слот завтра в 18:00 (ночной тариф 800)
func newTestUseCase(t *testing.T) (*UseCase, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	store.grounds[1] = &domain.Ground{
		ID:          1,
		OwnerID:     10,
		Name:        "Arena One",
		DayPrice:    500,
		NightPrice:  800,
		OpeningTime: types.MustTimeString("06:00"),
		ClosingTime: types.MustTimeString("01:00"),
		IsActive:    true,
	}
	store.slots[100] = &domain.Slot{
		ID:        100,
		GroundID:  1,
		Date:      time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString("18:00"),
		EndTime:   types.MustTimeString("19:00"),
	}

	clock := fixedClock{now: time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)}

	uc := New(
		&fakeSlotRepo{store},
		&fakeBookingRepo{store},
		&fakeGroundRepo{store},
		&fakeActivityRepo{store},
		store,
		nopNotifier{},
		defaultConfig(),
		clock,
		nopLogger{},
	)

	return uc, store
}

func onlineRequest(userID int64, paid int64, mode domain.PaymentMode) *Request {
	orderID := "order_A1"
	paymentID := "pay_A1"
	return &Request{
		SlotID:        100,
		Source:        domain.SourceOnline,
		UserID:        &userID,
		CustomerName:  "Rahul",
		CustomerPhone: "+911234567890",
		Payment: PaymentDetails{
			Mode:             mode,
			PaidAmount:       paid,
			GatewayOrderID:   &orderID,
			GatewayPaymentID: &paymentID,
		},
	}
}

func TestExecuteOnlineFullPayment(t *testing.T) {
	uc, store := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), onlineRequest(7, 800, domain.PaymentModeFull))
	require.NoError(t, err)

	assert.Equal(t, int64(800), resp.TotalAmount)
	assert.Equal(t, int64(800), resp.PaidAmount)
	assert.Equal(t, int64(0), resp.DueAmount)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, int64(3), resp.PlatformFee)
	assert.Equal(t, int64(797), resp.OwnerPayout)

	assert.True(t, store.slots[100].IsBooked)
	require.Len(t, store.activity, 1)
	assert.Equal(t, domain.ActionBooked, store.activity[0].Action)
}

func TestExecuteOnlinePartialAdvance(t *testing.T) {
	uc, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), onlineRequest(7, 99, domain.PaymentModePartialAdvance))
	require.NoError(t, err)

	assert.Equal(t, int64(99), resp.PaidAmount)
	assert.Equal(t, int64(701), resp.DueAmount)
	assert.Equal(t, resp.TotalAmount, resp.PaidAmount+resp.DueAmount)
	assert.Equal(t, domain.PaymentPartiallyPaid, resp.PaymentStatus)
}

func TestExecuteManualBooking(t *testing.T) {
	uc, store := newTestUseCase(t)

	ownerID := int64(10)
	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:       100,
		Source:       domain.SourceManual,
		CustomerName: "Walk-in",
		OwnerID:      &ownerID,
	})
	require.NoError(t, err)

	// ручное бронирование всегда полностью оплачено наличными
	assert.Equal(t, domain.PaymentModeFull, resp.PaymentMode)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, resp.TotalAmount, resp.PaidAmount)
	assert.Equal(t, int64(0), resp.DueAmount)

	require.Len(t, store.activity, 1)
	assert.Equal(t, domain.ActionManualBooking, store.activity[0].Action)
}

func TestExecuteManualBookingWrongOwner(t *testing.T) {
	uc, _ := newTestUseCase(t)

	ownerID := int64(99)
	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       100,
		Source:       domain.SourceManual,
		CustomerName: "Walk-in",
		OwnerID:      &ownerID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteManualBookingRestrictedHour(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.slots[100].StartTime = types.MustTimeString("03:00")
	store.slots[100].EndTime = types.MustTimeString("04:00")

	ownerID := int64(10)
	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       100,
		Source:       domain.SourceManual,
		CustomerName: "Walk-in",
		OwnerID:      &ownerID,
	})
	assert.ErrorIs(t, err, ErrRestrictedHour)
}

func TestExecuteExpiredSlotWinsOverBooked(t *testing.T) {
	uc, store := newTestUseCase(t)

	// слот в прошлом и одновременно занят: истечение важнее конфликта
	store.slots[100].Date = time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	store.slots[100].IsBooked = true

	_, err := uc.Execute(context.Background(), onlineRequest(7, 800, domain.PaymentModeFull))
	assert.ErrorIs(t, err, ErrSlotExpired)
}

func TestExecuteBookedSlot(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.slots[100].IsBooked = true

	_, err := uc.Execute(context.Background(), onlineRequest(7, 800, domain.PaymentModeFull))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecuteStaleSlotFlagStillConflicts(t *testing.T) {
	uc, store := newTestUseCase(t)

	// флаг на слоте отстал, но активное бронирование уже существует
	userID := int64(3)
	store.bookings[uuid.New()] = &domain.Booking{
		ID:     uuid.New(),
		SlotID: 100,
		UserID: &userID,
		Status: domain.StatusBooked,
	}

	_, err := uc.Execute(context.Background(), onlineRequest(7, 800, domain.PaymentModeFull))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecuteQuotaExceeded(t *testing.T) {
	uc, store := newTestUseCase(t)

	// пользователь уже держит пять активных бронирований на эту дату
	userID := int64(7)
	for i := 0; i < 5; i++ {
		slotID := int64(200 + i)
		store.slots[slotID] = &domain.Slot{
			ID:        slotID,
			GroundID:  1,
			Date:      time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("06:00"),
			IsBooked:  true,
		}
		store.bookings[uuid.New()] = &domain.Booking{
			ID:     uuid.New(),
			SlotID: slotID,
			UserID: &userID,
			Status: domain.StatusBooked,
		}
	}

	_, err := uc.Execute(context.Background(), onlineRequest(7, 800, domain.PaymentModeFull))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestExecutePaidAboveTotal(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), onlineRequest(7, 1000, domain.PaymentModeFull))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteValidation(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 0, Source: domain.SourceOnline, CustomerName: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	userID := int64(7)
	_, err = uc.Execute(context.Background(), &Request{
		SlotID:       100,
		Source:       domain.SourceOnline,
		UserID:       &userID,
		CustomerName: "x",
		Payment:      PaymentDetails{Mode: "CRYPTO", PaidAmount: 800},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SlotID: 100, Source: "PHONE", CustomerName: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteConcurrentAllocationSingleWinner(t *testing.T) {
	uc, store := newTestUseCase(t)

	const workers = 50
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), onlineRequest(userID, 800, domain.PaymentModeFull))
			results <- err
		}(int64(i + 1))
	}

	wg.Wait()
	close(results)

	won, lost := 0, 0
	for err := range results {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, ErrSlotUnavailable)
			lost++
		}
	}

	assert.Equal(t, 1, won, "exactly one allocation must win the slot")
	assert.Equal(t, workers-1, lost)

	active := 0
	for _, b := range store.bookings {
		if b.SlotID == 100 && b.IsActive() {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.True(t, store.slots[100].IsBooked)
}
