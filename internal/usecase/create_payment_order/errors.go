package create_payment_order

import "errors"

var (
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotUnavailable предварительная проверка: слот уже занят.
	// Окончательное решение остаётся за захватом слота после оплаты
	ErrSlotUnavailable = errors.New("slot unavailable")

	ErrSlotExpired   = errors.New("slot expired")
	ErrQuotaExceeded = errors.New("booking quota exceeded")

	// ErrGatewayFailure платёжный шлюз не смог создать заказ
	ErrGatewayFailure = errors.New("payment gateway failure")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)
