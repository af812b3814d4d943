package reconcile_webhook

import "errors"

var (
	// ErrSignatureInvalid подпись события не сошлась, событие отбрасывается
	// без побочных эффектов
	ErrSignatureInvalid = errors.New("webhook signature invalid")

	// ErrInvalidPayload тело события не разбирается
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrBookingNotFound событие не сопоставилось ни с одним бронированием
	ErrBookingNotFound = errors.New("booking not found for event")

	ErrInternal = errors.New("internal error")
)
