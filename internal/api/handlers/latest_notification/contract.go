package latest_notification

import (
	"context"

	"github.com/footbook/FB-GroundBookingService/internal/service/activity"
)

type ActivityService interface {
	LatestBookingEvent(ctx context.Context) (*activity.LatestEventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
