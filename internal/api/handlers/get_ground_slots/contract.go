package get_ground_slots

import (
	"context"

	getGroundSlots "github.com/footbook/FB-GroundBookingService/internal/usecase/get_ground_slots"
)

type GetGroundSlotsUseCase interface {
	Execute(ctx context.Context, req *getGroundSlots.Request) (*getGroundSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
