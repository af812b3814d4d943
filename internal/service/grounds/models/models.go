package models

import (
	"errors"
	"fmt"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")
)

// Request модели

// CreateGroundRequest запрос на регистрацию площадки
type CreateGroundRequest struct {
	OwnerID  int64  `json:"-"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Image    *string `json:"image,omitempty"`

	DayPrice   int64 `json:"dayPrice"`
	NightPrice int64 `json:"nightPrice"`

	OpeningTime string `json:"openingTime"` // "06:00"
	ClosingTime string `json:"closingTime"` // "01:00", может быть "раньше" открытия

	Slot1Start *string `json:"slot1Start,omitempty"`
	Slot1End   *string `json:"slot1End,omitempty"`
	Slot2Start *string `json:"slot2Start,omitempty"`
	Slot2End   *string `json:"slot2End,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateGroundRequest) ToDomain() (*domain.Ground, error) {
	opening, err := types.NewTimeStringFromString(r.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openingTime: %v", ErrInvalidTime, err)
	}

	closing, err := types.NewTimeStringFromString(r.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closingTime: %v", ErrInvalidTime, err)
	}

	ground := &domain.Ground{
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Location:    r.Location,
		Image:       r.Image,
		DayPrice:    r.DayPrice,
		NightPrice:  r.NightPrice,
		OpeningTime: opening,
		ClosingTime: closing,
		IsActive:    true,
	}

	ground.Slot1Start, err = parseOptionalTime(r.Slot1Start, "slot1Start")
	if err != nil {
		return nil, err
	}
	ground.Slot1End, err = parseOptionalTime(r.Slot1End, "slot1End")
	if err != nil {
		return nil, err
	}
	ground.Slot2Start, err = parseOptionalTime(r.Slot2Start, "slot2Start")
	if err != nil {
		return nil, err
	}
	ground.Slot2End, err = parseOptionalTime(r.Slot2End, "slot2End")
	if err != nil {
		return nil, err
	}

	return ground, nil
}

func parseOptionalTime(s *string, field string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}

	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTime, field, err)
	}

	return &ts, nil
}

// Response модели

// GroundResponse ответ с данными площадки
type GroundResponse struct {
	ID       int64   `json:"id"`
	OwnerID  int64   `json:"ownerId"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Image    *string `json:"image,omitempty"`

	DayPrice   int64 `json:"dayPrice"`
	NightPrice int64 `json:"nightPrice"`

	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`

	IsActive bool `json:"isActive"`
}

// GroundListResponse ответ со списком площадок
type GroundListResponse struct {
	Grounds []GroundResponse `json:"grounds"`
}

// FromDomainGround конвертирует domain модель в DTO
func FromDomainGround(g *domain.Ground) *GroundResponse {
	if g == nil {
		return nil
	}

	return &GroundResponse{
		ID:          g.ID,
		OwnerID:     g.OwnerID,
		Name:        g.Name,
		Location:    g.Location,
		Image:       g.Image,
		DayPrice:    g.DayPrice,
		NightPrice:  g.NightPrice,
		OpeningTime: g.OpeningTime.String(),
		ClosingTime: g.ClosingTime.String(),
		IsActive:    g.IsActive,
	}
}

// FromDomainGroundList конвертирует список domain моделей в DTO
func FromDomainGroundList(grounds []*domain.Ground) *GroundListResponse {
	resp := &GroundListResponse{Grounds: make([]GroundResponse, 0, len(grounds))}
	for _, g := range grounds {
		resp.Grounds = append(resp.Grounds, *FromDomainGround(g))
	}

	return resp
}
