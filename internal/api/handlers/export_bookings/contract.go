package export_bookings

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/reports"
)

type ReportsService interface {
	ExportGroundBookings(ctx context.Context, req *reports.ExportRequest) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
