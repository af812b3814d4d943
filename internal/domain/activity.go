package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction тип события в журнале действий
type ActivityAction string

const (
	ActionBooked            ActivityAction = "BOOKED"
	ActionManualBooking     ActivityAction = "MANUAL_BOOKING"
	ActionCustomerCancelled ActivityAction = "CUSTOMER_CANCELLED"
	ActionOwnerCancelled    ActivityAction = "OWNER_CANCELLED"
	ActionAdminAction       ActivityAction = "ADMIN_ACTION"
)

// ActivityLog append-only запись аудита.
// Никогда не изменяется и не удаляется
type ActivityLog struct {
	ID        int64
	UserID    *int64
	Action    ActivityAction
	BookingID *uuid.UUID
	SlotID    *int64
	Meta      *string // произвольный JSON с контекстом события
	Timestamp time.Time
}
