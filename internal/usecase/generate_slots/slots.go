package generate_slots

import (
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

// buildSlots разворачивает рабочие интервалы площадки в набор часовых
// слотов на указанную дату. Интервал, у которого конец не позже начала,
// считается переходящим через полночь: хвостовые слоты ложатся на
// следующий календарный день. Последний слот может быть короче часа,
// если интервал не кратен часу.
func buildSlots(groundID int64, ranges []domain.TimeRange, date time.Time, loc *time.Location) []*domain.Slot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	var slots []*domain.Slot
	for _, rng := range ranges {
		start := rng.Start.On(day, loc)
		end := rng.End.On(day, loc)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}

		for current := start; current.Before(end); {
			next := current.Add(time.Hour)
			if next.After(end) {
				next = end
			}

			slots = append(slots, &domain.Slot{
				GroundID:  groundID,
				Date:      time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, loc),
				StartTime: types.NewTimeString(current),
				EndTime:   types.NewTimeString(next),
			})

			current = next
		}
	}

	return slots
}
