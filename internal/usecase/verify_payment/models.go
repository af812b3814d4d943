package verify_payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type Request struct {
	UserID        int64
	CustomerName  string
	CustomerPhone string

	SlotID      int64
	PaymentMode domain.PaymentMode

	OrderID   string
	PaymentID string
	Signature string
}

type Response struct {
	BookingID     uuid.UUID
	SlotID        int64
	GroundID      int64
	GroundName    string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	TotalAmount   int64
	PaidAmount    int64
	DueAmount     int64
	PaymentMode   domain.PaymentMode
	PaymentStatus domain.PaymentStatus
	CreatedAt     time.Time
}
