package list_grounds

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/grounds/models"
)

type GroundsService interface {
	List(ctx context.Context) (*models.GroundListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
