package verify_payment

import (
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	verifyPayment "github.com/footbook/FB-GroundBookingService/internal/usecase/verify_payment"
)

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	SlotID      int64  `json:"slotId"`
	PaymentMode string `json:"paymentMode,omitempty"`
	OrderID     string `json:"orderId"`
	PaymentID   string `json:"paymentId"`
	Signature   string `json:"signature"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID     string `json:"bookingId"`
	SlotID        int64  `json:"slotId"`
	GroundID      int64  `json:"groundId"`
	GroundName    string `json:"groundName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	TotalAmount   int64  `json:"totalAmount"`
	PaidAmount    int64  `json:"paidAmount"`
	DueAmount     int64  `json:"dueAmount"`
	PaymentMode   string `json:"paymentMode"`
	PaymentStatus string `json:"paymentStatus"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *VerifyPaymentRequest) ToUseCaseRequest(userID int64, name, phone string) *verifyPayment.Request {
	return &verifyPayment.Request{
		UserID:        userID,
		CustomerName:  name,
		CustomerPhone: phone,
		SlotID:        r.SlotID,
		PaymentMode:   domain.PaymentMode(r.PaymentMode),
		OrderID:       r.OrderID,
		PaymentID:     r.PaymentID,
		Signature:     r.Signature,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *verifyPayment.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:     resp.BookingID.String(),
		SlotID:        resp.SlotID,
		GroundID:      resp.GroundID,
		GroundName:    resp.GroundName,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		TotalAmount:   resp.TotalAmount,
		PaidAmount:    resp.PaidAmount,
		DueAmount:     resp.DueAmount,
		PaymentMode:   string(resp.PaymentMode),
		PaymentStatus: string(resp.PaymentStatus),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
