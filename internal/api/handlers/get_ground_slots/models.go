package get_ground_slots

import (
	"github.com/footbook/FB-GroundBookingService/internal/domain"
	getGroundSlots "github.com/footbook/FB-GroundBookingService/internal/usecase/get_ground_slots"
)

// SlotResponse HTTP модель слота в сетке дня
type SlotResponse struct {
	SlotID    int64  `json:"slotId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int64  `json:"price"`
	IsBooked  bool   `json:"isBooked"`
	IsMine    bool   `json:"isMine"`
	CanCancel bool   `json:"canCancel"`
	NoRefund  bool   `json:"noRefund"`
}

// GroundSlotsResponse HTTP модель сетки слотов площадки на дату
type GroundSlotsResponse struct {
	GroundID   int64          `json:"groundId"`
	GroundName string         `json:"groundName"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getGroundSlots.Response) *GroundSlotsResponse {
	out := &GroundSlotsResponse{
		GroundID:   resp.GroundID,
		GroundName: resp.GroundName,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			SlotID:    s.SlotID,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Price:     s.Price,
			IsBooked:  s.IsBooked,
			IsMine:    s.IsMine,
			CanCancel: s.CanCancel,
			NoRefund:  s.NoRefund,
		})
	}

	return out
}
