package send_reminders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type fakeBookingRepo struct {
	reminders []*domain.BookingReminder
	marked    []uuid.UUID
}

func (f *fakeBookingRepo) ListDueReminders(ctx context.Context, dateFrom, dateTo time.Time) ([]*domain.BookingReminder, error) {
	out := make([]*domain.BookingReminder, 0, len(f.reminders))
	for _, r := range f.reminders {
		if !r.Date.Before(dateFrom) && !r.Date.After(dateTo) {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	f.marked = append(f.marked, id)
	return nil
}

type sentNote struct {
	route     string
	recipient string
}

type recordingNotifier struct{ sent []sentNote }

func (n *recordingNotifier) Notify(ctx context.Context, route, recipient, subject, body string) {
	n.sent = append(n.sent, sentNote{route: route, recipient: recipient})
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestExecuteSendsForSlotsInWindow(t *testing.T) {
	// сейчас 17:15, окно напоминаний покрывает слоты с началом в 18:00
	now := time.Date(2026, 2, 19, 17, 15, 0, 0, time.UTC)
	date := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)

	userID := int64(7)
	due := &domain.BookingReminder{
		BookingID:  uuid.New(),
		UserID:     &userID,
		OwnerID:    10,
		GroundName: "Arena One",
		Date:       date,
		StartTime:  types.MustTimeString("18:00"),
		EndTime:    types.MustTimeString("19:00"),
	}
	later := &domain.BookingReminder{
		BookingID:  uuid.New(),
		OwnerID:    10,
		GroundName: "Arena One",
		Date:       date,
		StartTime:  types.MustTimeString("20:00"),
		EndTime:    types.MustTimeString("21:00"),
	}

	repo := &fakeBookingRepo{reminders: []*domain.BookingReminder{due, later}}
	notes := &recordingNotifier{}

	uc := New(repo, notes, time.UTC, fixedClock{now: now}, nopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, repo.marked, 1)
	assert.Equal(t, due.BookingID, repo.marked[0])

	// уведомляются и владелец, и клиент
	require.Len(t, notes.sent, 2)
	assert.Equal(t, "notify.booking.reminder", notes.sent[0].route)
	assert.Equal(t, "owner:10", notes.sent[0].recipient)
	assert.Equal(t, "user:7", notes.sent[1].recipient)
}

func TestExecuteManualBookingNotifiesOwnerOnly(t *testing.T) {
	now := time.Date(2026, 2, 19, 17, 15, 0, 0, time.UTC)
	date := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{reminders: []*domain.BookingReminder{{
		BookingID:  uuid.New(),
		OwnerID:    10,
		GroundName: "Arena One",
		Date:       date,
		StartTime:  types.MustTimeString("18:00"),
		EndTime:    types.MustTimeString("19:00"),
	}}}
	notes := &recordingNotifier{}

	uc := New(repo, notes, time.UTC, fixedClock{now: now}, nopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, notes.sent, 1)
	assert.Equal(t, "owner:10", notes.sent[0].recipient)
}

func TestExecuteCrossMidnightWindow(t *testing.T) {
	// 23:16: окно захватывает слот 00:00 следующей даты
	now := time.Date(2026, 2, 19, 23, 16, 0, 0, time.UTC)
	nextDate := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{reminders: []*domain.BookingReminder{{
		BookingID:  uuid.New(),
		OwnerID:    10,
		GroundName: "Arena One",
		Date:       nextDate,
		StartTime:  types.MustTimeString("00:00"),
		EndTime:    types.MustTimeString("01:00"),
	}}}
	notes := &recordingNotifier{}

	uc := New(repo, notes, time.UTC, fixedClock{now: now}, nopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestExecuteNothingDue(t *testing.T) {
	now := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	notes := &recordingNotifier{}

	uc := New(repo, notes, time.UTC, fixedClock{now: now}, nopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, notes.sent)
	assert.Empty(t, repo.marked)
}
