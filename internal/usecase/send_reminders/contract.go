package send_reminders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

type BookingRepository interface {
	ListDueReminders(ctx context.Context, dateFrom, dateTo time.Time) ([]*domain.BookingReminder, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

type Notifier interface {
	Notify(ctx context.Context, route, recipient, subject, body string)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type TimeProvider interface {
	Now() time.Time
}
