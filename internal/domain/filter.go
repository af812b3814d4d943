package domain

import "time"

// GroundBookingsFilter фильтр для выборки бронирований площадки
type GroundBookingsFilter struct {
	GroundID        int64          // обязательный параметр
	StartDate       *time.Time     // начало периода (опционально)
	EndDate         *time.Time     // конец периода (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли отмененные бронирования
}
