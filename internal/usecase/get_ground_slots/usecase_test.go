package get_ground_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type fakeGroundRepo struct{ grounds map[int64]*domain.Ground }

func (f *fakeGroundRepo) GetByID(ctx context.Context, id int64) (*domain.Ground, error) {
	g, ok := f.grounds[id]
	if !ok {
		return nil, groundStorage.ErrGroundNotFound
	}
	copied := *g
	return &copied, nil
}

type fakeSlotRepo struct{ slots []*domain.Slot }

func (f *fakeSlotRepo) GetByGroundAndDate(ctx context.Context, groundID int64, date time.Time) ([]*domain.Slot, error) {
	out := make([]*domain.Slot, 0, len(f.slots))
	for _, s := range f.slots {
		if s.GroundID == groundID && s.Date.Equal(date) {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeBookingRepo struct{ bookings []*domain.Booking }

func (f *fakeBookingRepo) GetActiveBySlotIDs(ctx context.Context, slotIDs []int64) ([]*domain.Booking, error) {
	wanted := make(map[int64]bool, len(slotIDs))
	for _, id := range slotIDs {
		wanted[id] = true
	}

	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if wanted[b.SlotID] && b.IsActive() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeGenerator struct{ calls int }

func (f *fakeGenerator) EnsureForDate(ctx context.Context, groundID int64, date time.Time) (int, error) {
	f.calls++
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var slotDate = time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)

func testSlot(id int64, start, end string) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		GroundID:  1,
		Date:      slotDate,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

type fixture struct {
	uc        *UseCase
	slots     *fakeSlotRepo
	bookings  *fakeBookingRepo
	generator *fakeGenerator
}

func newFixture(t *testing.T, ground *domain.Ground, now time.Time, slots ...*domain.Slot) *fixture {
	t.Helper()

	slotRepo := &fakeSlotRepo{slots: slots}
	bookingRepo := &fakeBookingRepo{}
	generator := &fakeGenerator{}

	uc := New(
		&fakeGroundRepo{grounds: map[int64]*domain.Ground{ground.ID: ground}},
		slotRepo,
		bookingRepo,
		generator,
		time.UTC,
		fixedClock{now: now},
		nopLogger{},
	)

	return &fixture{uc: uc, slots: slotRepo, bookings: bookingRepo, generator: generator}
}

func dayGround() *domain.Ground {
	return &domain.Ground{
		ID:          1,
		OwnerID:     10,
		Name:        "Arena One",
		DayPrice:    500,
		NightPrice:  800,
		OpeningTime: types.MustTimeString("06:00"),
		ClosingTime: types.MustTimeString("09:00"),
	}
}

func visibleIDs(resp *Response) []int64 {
	ids := make([]int64, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		ids = append(ids, s.SlotID)
	}
	return ids
}

func TestExecuteHidesStartedAndOutOfWindowSlots(t *testing.T) {
	// 07:30 того же дня: слот 06:00 уже начался, слот 10:00 остался
	// от прежнего расписания и в окно 06:00-09:00 не попадает
	now := time.Date(2026, 2, 19, 7, 30, 0, 0, time.UTC)
	f := newFixture(t, dayGround(), now,
		testSlot(1, "06:00", "07:00"),
		testSlot(2, "08:00", "09:00"),
		testSlot(3, "10:00", "11:00"),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{GroundID: 1, Date: slotDate})
	require.NoError(t, err)

	ids := visibleIDs(resp)
	assert.Equal(t, []int64{2}, ids)
	assert.NotContains(t, ids, int64(1))
	assert.NotContains(t, ids, int64(3))
	assert.Equal(t, 1, f.generator.calls)
}

func TestExecuteOvernightWindowKeepsSmallHours(t *testing.T) {
	ground := dayGround()
	ground.OpeningTime = types.MustTimeString("18:00")
	ground.ClosingTime = types.MustTimeString("01:00")

	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, ground, now,
		testSlot(1, "18:00", "19:00"),
		testSlot(2, "00:00", "01:00"),
		testSlot(3, "10:00", "11:00"),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{GroundID: 1, Date: slotDate})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, visibleIDs(resp))
}

func TestExecuteMarksOwnBooking(t *testing.T) {
	now := time.Date(2026, 2, 19, 5, 0, 0, 0, time.UTC)
	f := newFixture(t, dayGround(), now,
		testSlot(1, "06:00", "07:00"),
		testSlot(2, "08:00", "09:00"),
	)

	userID := int64(7)
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:     uuid.New(),
		SlotID: 2,
		UserID: &userID,
		Status: domain.StatusBooked,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{GroundID: 1, Date: slotDate, UserID: &userID})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// 06:00 свободен и оценён по дневному тарифу
	free := resp.Slots[0]
	assert.False(t, free.IsBooked)
	assert.False(t, free.IsMine)
	assert.Equal(t, int64(500), free.Price)

	// собственное бронирование на 08:00, до начала меньше четырёх часов
	mine := resp.Slots[1]
	assert.True(t, mine.IsBooked)
	assert.True(t, mine.IsMine)
	assert.True(t, mine.CanCancel)
	assert.True(t, mine.NoRefund)
}

func TestExecuteForeignBookingShownAsBookedOnly(t *testing.T) {
	now := time.Date(2026, 2, 19, 5, 0, 0, 0, time.UTC)
	f := newFixture(t, dayGround(), now, testSlot(1, "06:00", "07:00"))

	other := int64(9)
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:     uuid.New(),
		SlotID: 1,
		UserID: &other,
		Status: domain.StatusBooked,
	})

	userID := int64(7)
	resp, err := f.uc.Execute(context.Background(), &Request{GroundID: 1, Date: slotDate, UserID: &userID})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	assert.True(t, resp.Slots[0].IsBooked)
	assert.False(t, resp.Slots[0].IsMine)
	assert.False(t, resp.Slots[0].CanCancel)
}

func TestExecuteGroundNotFound(t *testing.T) {
	now := time.Date(2026, 2, 19, 5, 0, 0, 0, time.UTC)
	f := newFixture(t, dayGround(), now)

	_, err := f.uc.Execute(context.Background(), &Request{GroundID: 404, Date: slotDate})
	assert.ErrorIs(t, err, ErrGroundNotFound)
}

func TestExecuteValidation(t *testing.T) {
	now := time.Date(2026, 2, 19, 5, 0, 0, 0, time.UTC)
	f := newFixture(t, dayGround(), now)

	_, err := f.uc.Execute(context.Background(), &Request{GroundID: 0, Date: slotDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
