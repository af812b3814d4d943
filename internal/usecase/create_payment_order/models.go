package create_payment_order

import "github.com/footbook/FB-GroundBookingService/internal/domain"

type Request struct {
	SlotID      int64
	UserID      int64
	PaymentMode domain.PaymentMode
}

// Response параметры заказа для оплаты на клиенте.
// PayNow и Due в целых рупиях, AmountMinorUnits - та же сумма PayNow
// в пайсах, как того требует шлюз
type Response struct {
	OrderID          string
	Currency         string
	AmountMinorUnits int64
	PayNow           int64
	Due              int64
	Total            int64
	PaymentMode      domain.PaymentMode
}
