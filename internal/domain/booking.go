package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

// BookingSource источник бронирования
type BookingSource string

const (
	SourceOnline BookingSource = "ONLINE"
	SourceManual BookingSource = "MANUAL"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// PaymentMode режим оплаты
type PaymentMode string

const (
	// PaymentModeFull полная оплата при бронировании
	PaymentModeFull PaymentMode = "FULL"
	// PaymentModePartialAdvance фиксированный аванс, остаток к доплате
	PaymentModePartialAdvance PaymentMode = "PARTIAL_ADVANCE"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentFailed        PaymentStatus = "FAILED"
)

// Booking бронирование ровно одного слота.
// ID назначается при создании и никогда не переиспользуется.
// Имя/телефон клиента - снимок на момент бронирования, независимый
// от последующих изменений аккаунта
type Booking struct {
	ID     uuid.UUID
	SlotID int64

	// UserID отсутствует для ручных бронирований владельца
	UserID        *int64
	CustomerName  string
	CustomerPhone string

	DurationHours int
	TotalAmount   int64
	PlatformFee   int64
	OwnerPayout   int64

	Source BookingSource
	Status BookingStatus

	PaymentMode   PaymentMode
	PaymentStatus PaymentStatus
	PaidAmount    int64
	DueAmount     int64
	PaymentPaidAt *time.Time

	// Корреляционные идентификаторы платежного шлюза, выставляются не более одного раза
	GatewayOrderID   *string
	GatewayPaymentID *string
	GatewaySignature *string

	CreatedAt    time.Time
	CancelledAt  *time.Time
	ReminderSent bool
}

// IsActive возвращает true, если бронирование удерживает слот
func (b *Booking) IsActive() bool {
	return b.Status == StatusBooked
}

// IsManual возвращает true для ручного бронирования владельца
func (b *Booking) IsManual() bool {
	return b.Source == SourceManual
}

// AmountsConsistent проверяет инвариант paid + due == total
func (b *Booking) AmountsConsistent() bool {
	return b.PaidAmount+b.DueAmount == b.TotalAmount
}

// BookingReminder срез данных активного бронирования для напоминания
// о предстоящем слоте
type BookingReminder struct {
	BookingID  uuid.UUID
	UserID     *int64
	OwnerID    int64
	GroundName string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// StartInstant возвращает момент начала слота бронирования
func (r *BookingReminder) StartInstant(loc *time.Location) time.Time {
	return r.StartTime.On(r.Date, loc)
}
