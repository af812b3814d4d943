package models

import (
	"errors"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetGroundBookingsRequest запрос на получение бронирований площадки
type GetGroundBookingsRequest struct {
	UserID          int64      `json:"userId"`
	GroundID        int64      `json:"groundId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetGroundBookingsRequest) ToDomainFilter() (domain.GroundBookingsFilter, error) {
	filter := domain.GroundBookingsFilter{
		GroundID:        r.GroundID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string `json:"id"`
	SlotID        int64  `json:"slotId"`
	GroundID      int64  `json:"groundId"`
	GroundName    string `json:"groundName"`
	Date          string `json:"date"`      // "2026-02-19"
	StartTime     string `json:"startTime"` // "18:00"
	EndTime       string `json:"endTime"`   // "19:00"
	DurationHours int    `json:"durationHours"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	Source string `json:"source"`
	Status string `json:"status"`

	PaymentMode   string  `json:"paymentMode"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalAmount   int64   `json:"totalAmount"`
	PaidAmount    int64   `json:"paidAmount"`
	DueAmount     int64   `json:"dueAmount"`
	PaymentPaidAt *string `json:"paymentPaidAt,omitempty"` // ISO 8601 format

	// Подсказки для клиентского интерфейса, заполняются сервисом
	CanCancel bool `json:"canCancel"`
	NoRefund  bool `json:"noRefund"`

	CreatedAt   time.Time `json:"createdAt"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// Слот и площадка нужны для денормализованных полей
func FromDomainBooking(b *domain.Booking, slot *domain.Slot, ground *domain.Ground) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID.String(),
		SlotID:        b.SlotID,
		GroundID:      ground.ID,
		GroundName:    ground.Name,
		Date:          slot.Date.Format(domain.DateFormat),
		StartTime:     slot.StartTime.String(),
		EndTime:       slot.EndTime.String(),
		DurationHours: b.DurationHours,
		CustomerName:  b.CustomerName,
		Source:        string(b.Source),
		Status:        string(b.Status),
		PaymentMode:   string(b.PaymentMode),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		PaidAmount:    b.PaidAmount,
		DueAmount:     b.DueAmount,
		CreatedAt:     b.CreatedAt,
	}

	if b.CustomerPhone != "" {
		phone := b.CustomerPhone
		resp.CustomerPhone = &phone
	}

	if b.PaymentPaidAt != nil {
		paidAt := b.PaymentPaidAt.Format(time.RFC3339)
		resp.PaymentPaidAt = &paidAt
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusBooked:
		return domain.StatusBooked, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	}

	return "", ErrInvalidStatus
}
