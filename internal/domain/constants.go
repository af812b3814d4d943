package domain

// Тарифные часы: дневной тариф действует для часов [DayRateStartHour, DayRateEndHour)
const (
	DayRateStartHour = 6
	DayRateEndHour   = 18
)

// Параметры бронирования по умолчанию (переопределяются конфигурацией)
const (
	DefaultPlatformFee       = 3  // комиссия платформы с бронирования
	DefaultAdvanceAmount     = 99 // фиксированный аванс частичной оплаты
	DefaultMaxBookingsPerDay = 5  // активных бронирований на пользователя/площадку/дату
	DefaultSlotHorizonDays   = 14 // окно предварительной генерации слотов

	// Запретное окно для ручных бронирований владельца: [2, 6) часов
	DefaultRestrictedStartHour = 2
	DefaultRestrictedEndHour   = 6
)

// SlotDurationHours фиксированная длительность слота
const SlotDurationHours = 1

// RefundCutoffHours граница безвозвратной отмены: отмена строго менее чем
// за RefundCutoffHours часов до начала слота не подлежит возврату
const RefundCutoffHours = 4

// Форматы дат и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
