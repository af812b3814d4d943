package get_ground_slots

import (
	"time"

	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type Request struct {
	GroundID int64
	Date     time.Time

	// UserID запрашивающий пользователь, нужен для пометки его
	// собственных бронирований
	UserID *int64
}

type Response struct {
	GroundID   int64
	GroundName string
	Date       time.Time
	Slots      []SlotView
}

// SlotView слот глазами клиента: начавшиеся и выпавшие из окна работы
// слоты в выдачу не попадают. NoRefund имеет смысл только для
// собственных бронирований: отмена уже не вернёт деньги
type SlotView struct {
	SlotID    int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     int64
	IsBooked  bool
	IsMine    bool
	CanCancel bool
	NoRefund  bool
}
