package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	activityRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/activitylog"
)

var (
	// ErrNoEvents возвращается, когда журнал ещё пуст
	ErrNoEvents = errors.New("no booking events")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ActivityLogRepository интерфейс журнала действий
type ActivityLogRepository interface {
	GetLatestBookingEvent(ctx context.Context) (*domain.ActivityLog, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// GroundRepository интерфейс репозитория площадок
type GroundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ground, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LatestEventResponse последняя бронь для живой ленты на витрине
type LatestEventResponse struct {
	CustomerName string    `json:"customerName"`
	GroundName   string    `json:"groundName"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	Timestamp    time.Time `json:"timestamp"`
}

// Service лента последних бронирований
type Service struct {
	activityRepo ActivityLogRepository
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	groundRepo   GroundRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса ленты
func NewService(
	activityRepo ActivityLogRepository,
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	groundRepo GroundRepository,
	logger Logger,
) *Service {
	return &Service{
		activityRepo: activityRepo,
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		groundRepo:   groundRepo,
		logger:       logger,
	}
}

// LatestBookingEvent возвращает последнее событие бронирования
func (s *Service) LatestBookingEvent(ctx context.Context) (*LatestEventResponse, error) {
	entry, err := s.activityRepo.GetLatestBookingEvent(ctx)
	if err != nil {
		if errors.Is(err, activityRepo.ErrEntryNotFound) {
			return nil, ErrNoEvents
		}
		s.logger.Error("LatestBookingEvent: repository error: %v", err)
		return nil, fmt.Errorf("%w: LatestBookingEvent - repository error: %v", ErrInternal, err)
	}

	if entry.BookingID == nil || entry.SlotID == nil {
		return nil, ErrNoEvents
	}

	booking, err := s.bookingRepo.GetByID(ctx, *entry.BookingID)
	if err != nil {
		s.logger.Error("LatestBookingEvent: failed to get booking id=%s: %v", *entry.BookingID, err)
		return nil, fmt.Errorf("%w: LatestBookingEvent - failed to get booking: %v", ErrInternal, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, *entry.SlotID)
	if err != nil {
		s.logger.Error("LatestBookingEvent: failed to get slot id=%d: %v", *entry.SlotID, err)
		return nil, fmt.Errorf("%w: LatestBookingEvent - failed to get slot: %v", ErrInternal, err)
	}

	ground, err := s.groundRepo.GetByID(ctx, slot.GroundID)
	if err != nil {
		s.logger.Error("LatestBookingEvent: failed to get ground id=%d: %v", slot.GroundID, err)
		return nil, fmt.Errorf("%w: LatestBookingEvent - failed to get ground: %v", ErrInternal, err)
	}

	return &LatestEventResponse{
		CustomerName: booking.CustomerName,
		GroundName:   ground.Name,
		Date:         slot.Date.Format(domain.DateFormat),
		StartTime:    slot.StartTime.String(),
		Timestamp:    entry.Timestamp,
	}, nil
}
