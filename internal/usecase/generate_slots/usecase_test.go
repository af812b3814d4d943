package generate_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type fakeGroundRepo struct {
	grounds map[int64]*domain.Ground
}

func (f *fakeGroundRepo) GetByID(ctx context.Context, id int64) (*domain.Ground, error) {
	g, ok := f.grounds[id]
	if !ok {
		return nil, groundStorage.ErrGroundNotFound
	}
	return g, nil
}

// fakeSlotRepo повторяет уникальность (ground_id, date, start_time)
type fakeSlotRepo struct {
	slots map[string]*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*domain.Slot)}
}

func slotKey(s *domain.Slot) string {
	return fmt.Sprintf("%d/%s/%s", s.GroundID, s.Date.Format(domain.DateFormat), s.StartTime)
}

func (f *fakeSlotRepo) CreateIfAbsent(ctx context.Context, slot *domain.Slot) (bool, error) {
	key := slotKey(slot)
	if _, ok := f.slots[key]; ok {
		return false, nil
	}
	f.slots[key] = slot
	return true, nil
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func dayGround() *domain.Ground {
	return &domain.Ground{
		ID:          1,
		OwnerID:     10,
		Name:        "Arena One",
		DayPrice:    500,
		NightPrice:  800,
		OpeningTime: types.MustTimeString("06:00"),
		ClosingTime: types.MustTimeString("09:00"),
		IsActive:    true,
	}
}

func TestEnsureForDateSimpleWindow(t *testing.T) {
	loc := time.UTC
	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{1: dayGround()}}
	slots := newFakeSlotRepo()
	uc := New(grounds, slots, loc, nopLogger{})

	date := time.Date(2026, 2, 19, 0, 0, 0, 0, loc)
	created, err := uc.EnsureForDate(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Len(t, slots.slots, 3)

	starts := make(map[string]bool)
	for _, s := range slots.slots {
		starts[s.StartTime.String()] = true
		assert.Equal(t, "2026-02-19", s.Date.Format(domain.DateFormat))
	}
	assert.True(t, starts["06:00"])
	assert.True(t, starts["07:00"])
	assert.True(t, starts["08:00"])
}

func TestEnsureForDateOvernightWindow(t *testing.T) {
	loc := time.UTC
	ground := dayGround()
	ground.OpeningTime = types.MustTimeString("18:00")
	ground.ClosingTime = types.MustTimeString("01:00")

	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{1: ground}}
	slots := newFakeSlotRepo()
	uc := New(grounds, slots, loc, nopLogger{})

	date := time.Date(2026, 2, 19, 0, 0, 0, 0, loc)
	created, err := uc.EnsureForDate(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Equal(t, 7, created)

	// хвостовой слот переходит на следующую календарную дату
	tail, ok := slots.slots["1/2026-02-20/00:00"]
	require.True(t, ok, "expected slot starting at midnight on the next date")
	assert.Equal(t, "01:00", tail.EndTime.String())

	first, ok := slots.slots["1/2026-02-19/18:00"]
	require.True(t, ok)
	assert.Equal(t, "19:00", first.EndTime.String())
}

func TestEnsureForDateIdempotent(t *testing.T) {
	loc := time.UTC
	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{1: dayGround()}}
	slots := newFakeSlotRepo()
	uc := New(grounds, slots, loc, nopLogger{})

	date := time.Date(2026, 2, 19, 0, 0, 0, 0, loc)

	created, err := uc.EnsureForDate(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	created, err = uc.EnsureForDate(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, slots.slots, 3)
}

func TestEnsureWindow(t *testing.T) {
	loc := time.UTC
	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{1: dayGround()}}
	slots := newFakeSlotRepo()
	uc := New(grounds, slots, loc, nopLogger{})

	start := time.Date(2026, 2, 19, 0, 0, 0, 0, loc)
	created, err := uc.EnsureWindow(context.Background(), 1, start, 14)
	require.NoError(t, err)
	assert.Equal(t, 3*14, created)

	_, err = uc.EnsureWindow(context.Background(), 1, start, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnsureForDateGroundNotFound(t *testing.T) {
	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{}}
	uc := New(grounds, newFakeSlotRepo(), time.UTC, nopLogger{})

	_, err := uc.EnsureForDate(context.Background(), 42, time.Now())
	assert.ErrorIs(t, err, ErrGroundNotFound)
}
