package domain

import (
	"time"

	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

// Slot материализованное часовое окно бронирования.
// Тройка (GroundID, Date, StartTime) глобально уникальна - это якорь
// всей конкурентной логики. IsBooked - кэш наличия активного бронирования
type Slot struct {
	ID        int64
	GroundID  int64
	Date      time.Time // календарная дата, без времени
	StartTime types.TimeString
	EndTime   types.TimeString
	IsBooked  bool
}

// StartInstant возвращает абсолютный момент начала слота в указанной таймзоне
func (s *Slot) StartInstant(loc *time.Location) time.Time {
	return s.StartTime.On(s.Date, loc)
}

// IsPast проверяет, что слот уже начался (и бронировать его нельзя)
func (s *Slot) IsPast(now time.Time, loc *time.Location) bool {
	return !s.StartInstant(loc).After(now)
}

// HoursUntilStart возвращает число часов до начала слота
func (s *Slot) HoursUntilStart(now time.Time, loc *time.Location) float64 {
	return s.StartInstant(loc).Sub(now).Hours()
}
