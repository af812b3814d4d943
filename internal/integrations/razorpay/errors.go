package razorpay

import "errors"

var (
	// ErrGateway возвращается при ошибке обращения к платежному шлюзу
	ErrGateway = errors.New("razorpay client: gateway error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("razorpay client: invalid response")
)
