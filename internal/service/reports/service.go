package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	groundRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
)

// ExportRequest параметры выгрузки бронирований площадки
type ExportRequest struct {
	GroundID  int64
	UserID    int64
	StartDate *time.Time
	EndDate   *time.Time
}

// Service выгрузка журнала бронирований площадки в CSV для владельца
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	groundRepo  GroundRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(bookingRepo BookingRepository, slotRepo SlotRepository, groundRepo GroundRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		groundRepo:  groundRepo,
		logger:      logger,
	}
}

// ExportGroundBookings выгружает бронирования площадки за период,
// включая отменённые. Доступно только владельцу площадки
func (s *Service) ExportGroundBookings(ctx context.Context, req *ExportRequest) ([]byte, error) {
	s.logger.Info("ExportGroundBookings: exporting bookings for ground=%d, user=%d", req.GroundID, req.UserID)

	ground, err := s.groundRepo.GetByID(ctx, req.GroundID)
	if err != nil {
		if errors.Is(err, groundRepo.ErrGroundNotFound) {
			return nil, ErrGroundNotFound
		}
		s.logger.Error("ExportGroundBookings: failed to get ground id=%d: %v", req.GroundID, err)
		return nil, fmt.Errorf("%w: ExportGroundBookings - failed to get ground: %v", ErrInternal, err)
	}

	if ground.OwnerID != req.UserID {
		s.logger.Warn("ExportGroundBookings: user=%d is not the owner of ground=%d", req.UserID, req.GroundID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByGroundWithFilter(ctx, domain.GroundBookingsFilter{
		GroundID:        req.GroundID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("ExportGroundBookings: repository error for ground=%d: %v", req.GroundID, err)
		return nil, fmt.Errorf("%w: ExportGroundBookings - repository error: %v", ErrInternal, err)
	}

	data, err := s.writeCSV(ctx, bookings)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ExportGroundBookings: exported %d bookings for ground=%d", len(bookings), req.GroundID)
	return data, nil
}

func (s *Service) writeCSV(ctx context.Context, bookings []*domain.Booking) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"booking_id", "date", "start_time", "end_time",
		"customer_name", "customer_phone", "source", "status",
		"payment_mode", "payment_status", "total_amount", "paid_amount", "due_amount",
		"created_at", "cancelled_at",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("%w: writeCSV - write header: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		slot, err := s.slotRepo.GetByID(ctx, b.SlotID)
		if err != nil {
			s.logger.Error("writeCSV: failed to get slot id=%d: %v", b.SlotID, err)
			return nil, fmt.Errorf("%w: writeCSV - failed to get slot: %v", ErrInternal, err)
		}

		cancelledAt := ""
		if b.CancelledAt != nil {
			cancelledAt = b.CancelledAt.Format(time.RFC3339)
		}

		record := []string{
			b.ID.String(),
			slot.Date.Format(domain.DateFormat),
			slot.StartTime.String(),
			slot.EndTime.String(),
			b.CustomerName,
			b.CustomerPhone,
			string(b.Source),
			string(b.Status),
			string(b.PaymentMode),
			string(b.PaymentStatus),
			strconv.FormatInt(b.TotalAmount, 10),
			strconv.FormatInt(b.PaidAmount, 10),
			strconv.FormatInt(b.DueAmount, 10),
			b.CreatedAt.Format(time.RFC3339),
			cancelledAt,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("%w: writeCSV - write record: %v", ErrInternal, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: writeCSV - flush: %v", ErrInternal, err)
	}

	return buf.Bytes(), nil
}
