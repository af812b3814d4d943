package domain

import (
	"time"

	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

// Ground бронируемая площадка, принадлежащая владельцу
type Ground struct {
	ID       int64
	OwnerID  int64
	Name     string
	Location string
	Image    *string

	// Цены за час в целых рупиях
	DayPrice   int64
	NightPrice int64

	// Окно работы площадки. Если ClosingTime <= OpeningTime,
	// окно переходит через полночь
	OpeningTime types.TimeString
	ClosingTime types.TimeString

	// Опциональные диапазоны генерации слотов (до двух),
	// переопределяют окно работы
	Slot1Start *types.TimeString
	Slot1End   *types.TimeString
	Slot2Start *types.TimeString
	Slot2End   *types.TimeString

	IsActive  bool
	CreatedAt time.Time
}

// TimeRange диапазон времени суток для генерации слотов
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// SlotRanges возвращает настроенные диапазоны генерации слотов.
// Если явные диапазоны не заданы, используется окно работы площадки
func (g *Ground) SlotRanges() []TimeRange {
	ranges := make([]TimeRange, 0, 2)
	if g.Slot1Start != nil && g.Slot1End != nil {
		ranges = append(ranges, TimeRange{Start: *g.Slot1Start, End: *g.Slot1End})
	}
	if g.Slot2Start != nil && g.Slot2End != nil {
		ranges = append(ranges, TimeRange{Start: *g.Slot2Start, End: *g.Slot2End})
	}
	if len(ranges) > 0 {
		return ranges
	}
	return []TimeRange{{Start: g.OpeningTime, End: g.ClosingTime}}
}

// IsOvernight возвращает true, если окно работы переходит через полночь
func (g *Ground) IsOvernight() bool {
	return !g.ClosingTime.IsAfter(g.OpeningTime)
}

// PriceForHour возвращает цену за час в зависимости от времени суток:
// дневной тариф для часов [DayRateStartHour, DayRateEndHour), иначе ночной
func (g *Ground) PriceForHour(hour int) int64 {
	if hour >= DayRateStartHour && hour < DayRateEndHour {
		return g.DayPrice
	}
	return g.NightPrice
}

// IsWithinOperatingHours проверяет, что час начала слота попадает
// в текущее окно работы площадки (с учетом перехода через полночь)
func (g *Ground) IsWithinOperatingHours(start types.TimeString) bool {
	if g.IsOvernight() {
		return !start.IsBefore(g.OpeningTime) || start.IsBefore(g.ClosingTime)
	}
	return !start.IsBefore(g.OpeningTime) && start.IsBefore(g.ClosingTime)
}
