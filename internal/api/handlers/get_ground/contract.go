package get_ground

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/grounds/models"
)

type GroundsService interface {
	GetByID(ctx context.Context, id int64) (*models.GroundResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
