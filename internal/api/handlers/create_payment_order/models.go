package create_payment_order

import (
	"github.com/footbook/FB-GroundBookingService/internal/domain"
	createPaymentOrder "github.com/footbook/FB-GroundBookingService/internal/usecase/create_payment_order"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	SlotID      int64  `json:"slotId"`
	PaymentMode string `json:"paymentMode,omitempty"` // FULL | PARTIAL_ADVANCE
}

// OrderResponse HTTP response model. Amount в минорных единицах,
// как того ожидает чекаут шлюза
type OrderResponse struct {
	OrderID     string `json:"orderId"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	PayNow      int64  `json:"payNow"`
	Due         int64  `json:"due"`
	Total       int64  `json:"total"`
	PaymentMode string `json:"paymentMode"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) *createPaymentOrder.Request {
	return &createPaymentOrder.Request{
		SlotID:      r.SlotID,
		UserID:      userID,
		PaymentMode: domain.PaymentMode(r.PaymentMode),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPaymentOrder.Response) *OrderResponse {
	return &OrderResponse{
		OrderID:     resp.OrderID,
		Currency:    resp.Currency,
		Amount:      resp.AmountMinorUnits,
		PayNow:      resp.PayNow,
		Due:         resp.Due,
		Total:       resp.Total,
		PaymentMode: string(resp.PaymentMode),
	}
}
