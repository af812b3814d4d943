package verify_payment

import "errors"

var (
	// ErrSignatureInvalid подпись шлюза не сошлась, запрос отклоняется
	// без обращений к API
	ErrSignatureInvalid = errors.New("payment signature invalid")

	// ErrOrderMismatch платёж относится к другому заказу
	ErrOrderMismatch = errors.New("payment does not belong to order")

	// ErrPaymentNotCaptured деньги по платежу не получены
	ErrPaymentNotCaptured = errors.New("payment not captured")

	// ErrMetadataMismatch слот или пользователь в заказе не совпадают
	// с запросом
	ErrMetadataMismatch = errors.New("order metadata mismatch")

	// ErrAmountMismatch оплаченная сумма не равна ожидаемой
	ErrAmountMismatch = errors.New("paid amount mismatch")

	// ErrSlotTakenAfterPayment оплата прошла, но слот успели занять.
	// Деньги не возвращаются автоматически, инцидент фиксируется в
	// журнале для ручного разбора
	ErrSlotTakenAfterPayment = errors.New("slot taken after payment")

	ErrSlotNotFound   = errors.New("slot not found")
	ErrSlotExpired    = errors.New("slot expired")
	ErrQuotaExceeded  = errors.New("booking quota exceeded")
	ErrStoreBusy      = errors.New("store busy")
	ErrGatewayFailure = errors.New("payment gateway failure")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
)
