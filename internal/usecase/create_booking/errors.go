package create_booking

import "errors"

var (
	// ErrSlotNotFound слот с указанным идентификатором не существует
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotUnavailable слот уже занят активным бронированием
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrSlotExpired момент начала слота уже в прошлом
	ErrSlotExpired = errors.New("slot expired")

	// ErrQuotaExceeded достигнут дневной лимит активных бронирований
	// пользователя на площадку
	ErrQuotaExceeded = errors.New("booking quota exceeded")

	// ErrRestrictedHour ручное бронирование в запрещённый ночной интервал
	ErrRestrictedHour = errors.New("restricted hour for manual booking")

	// ErrStoreBusy транзакция не прошла после всех повторов
	ErrStoreBusy = errors.New("store busy")

	ErrGroundNotFound = errors.New("ground not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
)
