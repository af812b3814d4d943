package get_ground_bookings

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetGroundBookings(ctx context.Context, req *models.GetGroundBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
