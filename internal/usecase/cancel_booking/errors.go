package cancel_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не существует
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied инициатор не имеет права отменять это бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled бронирование уже отменено
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrPastBooking бронирование в прошлом, отмена не имеет смысла
	ErrPastBooking = errors.New("booking is in the past")

	// ErrStoreBusy транзакция не прошла после всех повторов
	ErrStoreBusy = errors.New("store busy")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)
