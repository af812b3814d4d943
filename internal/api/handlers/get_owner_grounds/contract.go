package get_owner_grounds

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/grounds/models"
)

type GroundsService interface {
	GetOwnerGrounds(ctx context.Context, ownerID int64) (*models.GroundListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
