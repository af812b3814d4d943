package send_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/notifier"
)

// Окно напоминания: слот начинается примерно через 45 минут.
// Допуск в минуту с каждой стороны покрывает дрожание планировщика
const (
	reminderLeadMin = 44 * time.Minute
	reminderLeadMax = 46 * time.Minute
)

// UseCase рассылает напоминания о предстоящих бронированиях.
// Запускается периодически; отметка reminder_sent гарантирует не более
// одного напоминания на бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func New(
	bookingRepo BookingRepository,
	eventNotifier Notifier,
	location *time.Location,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     eventNotifier,
		location:     location,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute отправляет напоминания по всем бронированиям, чьи слоты
// начинаются внутри окна, и возвращает число обработанных бронирований
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	windowStart := now.Add(reminderLeadMin)
	windowEnd := now.Add(reminderLeadMax)

	// окно может пересекать полночь, выборка по обеим датам
	dateFrom := dateOf(windowStart, uc.location)
	dateTo := dateOf(windowEnd, uc.location)

	candidates, err := uc.bookingRepo.ListDueReminders(ctx, dateFrom, dateTo)
	if err != nil {
		uc.logger.Error("Execute: failed to list due reminders: %v", err)
		return 0, fmt.Errorf("%w: Execute - failed to list due reminders: %v", ErrInternal, err)
	}

	sent := 0
	for _, rem := range candidates {
		start := rem.StartInstant(uc.location)
		if start.Before(windowStart) || start.After(windowEnd) {
			continue
		}

		uc.send(ctx, rem)

		if err := uc.bookingRepo.MarkReminderSent(ctx, rem.BookingID); err != nil {
			uc.logger.Error("Execute: failed to mark reminder for booking id=%s: %v", rem.BookingID, err)
			continue
		}

		sent++
	}

	if sent > 0 {
		uc.logger.Info("Execute: sent %d reminders", sent)
	}

	return sent, nil
}

func (uc *UseCase) send(ctx context.Context, rem *domain.BookingReminder) {
	subject := fmt.Sprintf("Скоро бронирование: %s", rem.GroundName)
	body := fmt.Sprintf("Слот %s %s-%s начнётся примерно через 45 минут",
		rem.Date.Format(domain.DateFormat), rem.StartTime, rem.EndTime)

	uc.notifier.Notify(ctx, notifier.RouteBookingReminder, fmt.Sprintf("owner:%d", rem.OwnerID), subject, body)

	if rem.UserID != nil {
		uc.notifier.Notify(ctx, notifier.RouteBookingReminder, fmt.Sprintf("user:%d", *rem.UserID), subject, body)
	}
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
