package razorpay

// Статусы платежей Razorpay, при которых деньги считаются полученными
const (
	PaymentStatusCaptured   = "captured"
	PaymentStatusAuthorized = "authorized"
)

// Order заказ платежного шлюза.
// Amount всегда в минимальных единицах валюты (пайсы для INR)
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Status   string
	Receipt  string
	Notes    map[string]string
}

// Payment платеж платежного шлюза.
// Amount всегда в минимальных единицах валюты
type Payment struct {
	ID      string
	OrderID string
	Amount  int64
	Status  string
	Method  string
}

// IsCaptured возвращает true, если деньги по платежу получены
func (p *Payment) IsCaptured() bool {
	return p.Status == PaymentStatusCaptured || p.Status == PaymentStatusAuthorized
}
