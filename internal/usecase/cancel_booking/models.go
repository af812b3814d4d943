package cancel_booking

import (
	"time"

	"github.com/google/uuid"
)

// Role роль инициатора отмены
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

type Request struct {
	BookingID uuid.UUID
	ActorID   int64
	Role      Role
}

// Response результат отмены. NoRefund выставляется только для
// клиентской отмены менее чем за четыре часа до начала слота
type Response struct {
	BookingID   uuid.UUID
	CancelledAt time.Time
	NoRefund    bool
	PaidAmount  int64
}
