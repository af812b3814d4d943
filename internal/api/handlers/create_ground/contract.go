package create_ground

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/grounds/models"
)

type GroundsService interface {
	Create(ctx context.Context, req *models.CreateGroundRequest) (*models.GroundResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
