package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

// Request запрос на захват слота. Для ручных бронирований UserID
// отсутствует, а платёжные детали игнорируются: такие бронирования
// всегда считаются полностью оплаченными наличными.
type Request struct {
	SlotID int64
	Source domain.BookingSource

	UserID        *int64
	CustomerName  string
	CustomerPhone string

	// OwnerID инициатор ручного бронирования, должен владеть площадкой
	OwnerID *int64

	Payment PaymentDetails
}

// PaymentDetails зафиксированный онлайн-платёж, подтверждённый до захвата
// слота. Итоговая сумма и остаток вычисляются из тарифа площадки.
type PaymentDetails struct {
	Mode             domain.PaymentMode
	PaidAmount       int64
	GatewayOrderID   *string
	GatewayPaymentID *string
	GatewaySignature *string
	PaidAt           *time.Time
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
	PlatformFee   int64
	OwnerPayout   int64
	PaidAmount    int64
	DueAmount     int64
	PaymentMode   domain.PaymentMode
	PaymentStatus domain.PaymentStatus
	Source        domain.BookingSource
	CreatedAt     time.Time
}
