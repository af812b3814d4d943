package manual_booking

import (
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	createBooking "github.com/footbook/FB-GroundBookingService/internal/usecase/create_booking"
)

// ManualBookingRequest HTTP request model
type ManualBookingRequest struct {
	SlotID        int64  `json:"slotId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
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
	PaymentMode   string `json:"paymentMode"`
	PaymentStatus string `json:"paymentStatus"`
	Source        string `json:"source"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ManualBookingRequest) ToUseCaseRequest(ownerID int64) *createBooking.Request {
	return &createBooking.Request{
		SlotID:        r.SlotID,
		Source:        domain.SourceManual,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		OwnerID:       &ownerID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
		PaymentMode:   string(resp.PaymentMode),
		PaymentStatus: string(resp.PaymentStatus),
		Source:        string(resp.Source),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
