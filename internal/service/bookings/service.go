package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	"github.com/footbook/FB-GroundBookingService/internal/service/bookings/models"
)

// Service читающая сторона бронирований: карточка, история пользователя,
// журнал площадки для владельца
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	groundRepo   GroundRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	groundRepo GroundRepository,
	location *time.Location,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		groundRepo:   groundRepo,
		location:     location,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и владельцу площадки
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	slot, ground, err := s.resolveSlotGround(ctx, booking)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	isCustomer := booking.UserID != nil && *booking.UserID == userID
	if !isCustomer && ground.OwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking, slot, ground)
	s.applyCancelHints(resp, booking, slot)

	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	resp, err := s.buildList(ctx, bookings)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return resp, nil
}

// GetGroundBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых
// Доступно только владельцу площадки
func (s *Service) GetGroundBookings(ctx context.Context, req *models.GetGroundBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetGroundBookings: fetching bookings for ground=%d, user=%d", req.GroundID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.GroundID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetGroundBookings: invalid filter for ground=%d: %v", req.GroundID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByGroundWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetGroundBookings: repository error for ground=%d: %v", req.GroundID, err)
		return nil, fmt.Errorf("%w: GetGroundBookings - repository error: %v", ErrInternal, err)
	}

	resp, err := s.buildList(ctx, bookings)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetGroundBookings: successfully fetched %d bookings for ground=%d", len(bookings), req.GroundID)
	return resp, nil
}

// Вспомогательные методы

// checkOwnerAccess проверяет, что пользователь владеет площадкой
func (s *Service) checkOwnerAccess(ctx context.Context, groundID, userID int64) error {
	ground, err := s.groundRepo.GetByID(ctx, groundID)
	if err != nil {
		if errors.Is(err, groundRepo.ErrGroundNotFound) {
			s.logger.Warn("checkOwnerAccess: ground id=%d not found", groundID)
			return ErrGroundNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get ground id=%d: %v", groundID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get ground: %v", ErrInternal, err)
	}

	if ground.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of ground=%d", userID, groundID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) resolveSlotGround(ctx context.Context, booking *domain.Booking) (*domain.Slot, *domain.Ground, error) {
	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		s.logger.Error("resolveSlotGround: failed to get slot id=%d: %v", booking.SlotID, err)
		return nil, nil, fmt.Errorf("%w: resolveSlotGround - failed to get slot: %v", ErrInternal, err)
	}

	ground, err := s.groundRepo.GetByID(ctx, slot.GroundID)
	if err != nil {
		s.logger.Error("resolveSlotGround: failed to get ground id=%d: %v", slot.GroundID, err)
		return nil, nil, fmt.Errorf("%w: resolveSlotGround - failed to get ground: %v", ErrInternal, err)
	}

	return slot, ground, nil
}

// buildList денормализует список бронирований. Площадки кэшируются по
// ходу обхода, слоты запрашиваются по одному
func (s *Service) buildList(ctx context.Context, bookings []*domain.Booking) (*models.BookingListResponse, error) {
	grounds := make(map[int64]*domain.Ground)

	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		slot, err := s.slotRepo.GetByID(ctx, b.SlotID)
		if err != nil {
			s.logger.Error("buildList: failed to get slot id=%d: %v", b.SlotID, err)
			return nil, fmt.Errorf("%w: buildList - failed to get slot: %v", ErrInternal, err)
		}

		ground, ok := grounds[slot.GroundID]
		if !ok {
			ground, err = s.groundRepo.GetByID(ctx, slot.GroundID)
			if err != nil {
				s.logger.Error("buildList: failed to get ground id=%d: %v", slot.GroundID, err)
				return nil, fmt.Errorf("%w: buildList - failed to get ground: %v", ErrInternal, err)
			}
			grounds[slot.GroundID] = ground
		}

		item := models.FromDomainBooking(b, slot, ground)
		s.applyCancelHints(item, b, slot)
		resp.Bookings = append(resp.Bookings, *item)
	}

	return resp, nil
}

// applyCancelHints проставляет клиентские подсказки отмены: активное
// бронирование на сегодняшнюю или будущую дату можно отменить, но менее
// чем за четыре часа до начала - уже без возврата
func (s *Service) applyCancelHints(resp *models.BookingResponse, booking *domain.Booking, slot *domain.Slot) {
	if !booking.IsActive() {
		return
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	resp.CanCancel = !slot.Date.Before(today)
	if resp.CanCancel {
		resp.NoRefund = slot.HoursUntilStart(now, s.location) < domain.RefundCutoffHours
	}
}
